package attributes

import (
	"fmt"
)

const TypeHeavyIon = "GenHeavyIon"

// HeavyIon stores the collision geometry of heavy-ion events.
type HeavyIon struct {
	NCollHard                    int     `json:"ncoll_hard"`
	NPartProjectile              int     `json:"npart_proj"`
	NPartTarget                  int     `json:"npart_targ"`
	NColl                        int     `json:"ncoll"`
	SpectatorNeutrons            int     `json:"spectator_neutrons"`
	SpectatorProtons             int     `json:"spectator_protons"`
	NNWoundedCollisions          int     `json:"n_nwounded_collisions"`
	NWoundedNCollisions          int     `json:"nwounded_n_collisions"`
	NWoundedNWoundedCollisions   int     `json:"nwounded_nwounded_collisions"`
	ImpactParameter              float64 `json:"impact_parameter"`
	EventPlaneAngle              float64 `json:"event_plane_angle"`
	Eccentricity                 float64 `json:"eccentricity"`
	SigmaInelasticNucleonNucleon float64 `json:"sigma_inel_nn"`
}

// Set assigns all values at once in the conventional order.
func (hi *HeavyIon) Set(
	nCollHard, nPartProjectile, nPartTarget, nColl, spectatorNeutrons, spectatorProtons int,
	nNWounded, nWoundedN, nWoundedNWounded int,
	impactParameter, eventPlaneAngle, eccentricity, sigmaInelNN float64,
) {

	*hi = HeavyIon{
		NCollHard:                    nCollHard,
		NPartProjectile:              nPartProjectile,
		NPartTarget:                  nPartTarget,
		NColl:                        nColl,
		SpectatorNeutrons:            spectatorNeutrons,
		SpectatorProtons:             spectatorProtons,
		NNWoundedCollisions:          nNWounded,
		NWoundedNCollisions:          nWoundedN,
		NWoundedNWoundedCollisions:   nWoundedNWounded,
		ImpactParameter:              impactParameter,
		EventPlaneAngle:              eventPlaneAngle,
		Eccentricity:                 eccentricity,
		SigmaInelasticNucleonNucleon: sigmaInelNN,
	}
}

func (hi *HeavyIon) TypeName() string {
	return TypeHeavyIon
}

func (hi *HeavyIon) Describe() string {
	return fmt.Sprintf("%s: %d %d %d %d %d %d %d %d %d %s %s %s %s",
		TypeHeavyIon,
		hi.NCollHard, hi.NPartProjectile, hi.NPartTarget, hi.NColl,
		hi.SpectatorNeutrons, hi.SpectatorProtons,
		hi.NNWoundedCollisions, hi.NWoundedNCollisions, hi.NWoundedNWoundedCollisions,
		formatFloat(hi.ImpactParameter), formatFloat(hi.EventPlaneAngle),
		formatFloat(hi.Eccentricity), formatFloat(hi.SigmaInelasticNucleonNucleon))
}

func (hi *HeavyIon) MarshalAttribute() ([]byte, error) {
	return json.Marshal(hi)
}

func (hi *HeavyIon) UnmarshalAttribute(data []byte) error {
	return unmarshal(data, hi)
}
