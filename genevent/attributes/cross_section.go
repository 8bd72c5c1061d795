package attributes

const TypeCrossSection = "GenCrossSection"

// CrossSection stores the generator's running estimate of the cross section and its error (in pb).
type CrossSection struct {
	Value float64 `json:"value"`
	Error float64 `json:"error"`
}

func (cs *CrossSection) SetCrossSection(value, err float64) {
	cs.Value = value
	cs.Error = err
}

func (cs *CrossSection) TypeName() string {
	return TypeCrossSection
}

func (cs *CrossSection) Describe() string {
	return TypeCrossSection + ": " + formatFloat(cs.Value) + " " + formatFloat(cs.Error)
}

func (cs *CrossSection) MarshalAttribute() ([]byte, error) {
	return json.Marshal(cs)
}

func (cs *CrossSection) UnmarshalAttribute(data []byte) error {
	return unmarshal(data, cs)
}
