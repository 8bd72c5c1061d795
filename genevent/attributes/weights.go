package attributes

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

const TypeWeights = "GenWeights"

// Weights is an ordered vector of event weights, each with a name.
// Weights added without a name are named after their index ("0", "1", ...).
type Weights struct {
	names  []string
	values []float64
}

type weightsPayload struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// NewWeights creates a weight vector with default names.
func NewWeights(values ...float64) *Weights {
	w := &Weights{}
	for _, value := range values {
		w.PushBack("", value)
	}

	return w
}

func (w *Weights) Len() int {
	return len(w.values)
}

// PushBack appends a weight; an empty key selects the default name.
func (w *Weights) PushBack(key string, value float64) {
	if key == "" {
		key = strconv.Itoa(len(w.names))
	}

	w.names = append(w.names, key)
	w.values = append(w.values, value)
}

// Set assigns the weight at index n, padding the vector with zero weights if necessary.
// An empty key keeps the current name.
func (w *Weights) Set(n int, key string, value float64) {
	if n < 0 {
		return
	}

	for len(w.values) <= n {
		w.PushBack("", 0)
	}

	if key != "" {
		w.names[n] = key
	}

	w.values[n] = value
}

// Get returns the weight at index n or def if there is none.
func (w *Weights) Get(n int, def float64) float64 {
	if n < 0 || n >= len(w.values) {
		return def
	}

	return w.values[n]
}

// GetByName returns the weight with the given name or def if there is none.
func (w *Weights) GetByName(key string, def float64) float64 {
	return w.Get(w.Index(key), def)
}

// Index returns the index of the named weight or -1.
func (w *Weights) Index(key string) int {
	return slices.Index(w.names, key)
}

func (w *Weights) HasKey(key string) bool {
	return w.Index(key) >= 0
}

// Key returns the name of the weight at index n, "" if there is none.
func (w *Weights) Key(n int) string {
	if n < 0 || n >= len(w.names) {
		return ""
	}

	return w.names[n]
}

// Values returns a copy of all weights in order.
func (w *Weights) Values() []float64 {
	return slices.Clone(w.values)
}

// Equal reports whether both vectors hold the same names and values in the same order.
func (w *Weights) Equal(other *Weights) bool {
	return slices.Equal(w.names, other.names) && slices.Equal(w.values, other.values)
}

func (w *Weights) TypeName() string {
	return TypeWeights
}

// Describe renders the weights as "(name,value)" pairs.
func (w *Weights) Describe() string {
	pairs := make([]string, len(w.values))
	for i := range w.values {
		pairs[i] = "(" + w.names[i] + "," + formatFloat(w.values[i]) + ")"
	}

	return strings.Join(pairs, " ")
}

// Write renders one line per weight.
func (w *Weights) Write(out io.Writer) error {
	for i := range w.values {
		if _, err := fmt.Fprintf(out, "Weight %4d with name %10s is %s\n", i, w.names[i], formatFloat(w.values[i])); err != nil {
			return err
		}
	}

	return nil
}

func (w *Weights) MarshalAttribute() ([]byte, error) {
	return json.Marshal(weightsPayload{Names: w.names, Values: w.values})
}

func (w *Weights) UnmarshalAttribute(data []byte) error {
	var payload weightsPayload
	if err := unmarshal(data, &payload); err != nil {
		return err
	}

	if len(payload.Names) != len(payload.Values) {
		return fmt.Errorf("%w: %d names for %d weights", ErrMalformedAttribute, len(payload.Names), len(payload.Values))
	}

	w.names = payload.Names
	w.values = payload.Values

	return nil
}
