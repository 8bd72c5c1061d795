package genevent

import (
	"strconv"
	"strings"
)

/***** Field *****/

// Field selects the particle property a comparison is evaluated on.
type Field int

const (
	FieldStatus Field = iota + 1
	FieldStatusSubcode
	FieldPDGID
	FieldAbsPDGID
	FieldPx
	FieldPy
	FieldPz
	FieldE
	FieldPt
	FieldGeneratedMass
)

var fieldNames = map[Field]string{
	FieldStatus:        "status",
	FieldStatusSubcode: "status_subcode",
	FieldPDGID:         "pdg_id",
	FieldAbsPDGID:      "abs_pdg_id",
	FieldPx:            "px",
	FieldPy:            "py",
	FieldPz:            "pz",
	FieldE:             "e",
	FieldPt:            "pt",
	FieldGeneratedMass: "generated_mass",
}

// String provides the field name for logging and debugging.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}

	return "unknown"
}

// value reads the field from p. Integer fields are exact in float64.
func (f Field) value(p *Particle) float64 {
	switch f {
	case FieldStatus:
		return float64(p.status)
	case FieldStatusSubcode:
		return float64(p.statusSubcode)
	case FieldPDGID:
		return float64(p.pdgID)
	case FieldAbsPDGID:
		return float64(abs(p.pdgID))
	case FieldPx:
		return p.momentum.Px()
	case FieldPy:
		return p.momentum.Py()
	case FieldPz:
		return p.momentum.Pz()
	case FieldE:
		return p.momentum.E()
	case FieldPt:
		return p.momentum.Pt()
	case FieldGeneratedMass:
		return p.GeneratedMass()
	default:
		return 0
	}
}

func (f Field) Eq(value float64) Predicate { return f.compare(OpEq, value) }
func (f Field) Ne(value float64) Predicate { return f.compare(OpNe, value) }
func (f Field) Lt(value float64) Predicate { return f.compare(OpLt, value) }
func (f Field) Le(value float64) Predicate { return f.compare(OpLe, value) }
func (f Field) Gt(value float64) Predicate { return f.compare(OpGt, value) }
func (f Field) Ge(value float64) Predicate { return f.compare(OpGe, value) }

// Between matches lo <= field <= hi.
func (f Field) Between(lo, hi float64) Predicate {
	return f.Ge(lo).And(f.Le(hi))
}

func (f Field) compare(op Operator, value float64) Predicate {
	return Predicate{kind: kindComparison, field: f, op: op, value: value}
}

/***** Operator *****/

// Operator is the comparison applied between a Field and a constant.
type Operator int

const (
	OpEq Operator = iota + 1
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// String provides the operator symbol for logging and debugging.
func (op Operator) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

func (op Operator) apply(lhs, rhs float64) bool {
	switch op {
	case OpEq:
		return lhs == rhs
	case OpNe:
		return lhs != rhs
	case OpLt:
		return lhs < rhs
	case OpLe:
		return lhs <= rhs
	case OpGt:
		return lhs > rhs
	case OpGe:
		return lhs >= rhs
	default:
		return false
	}
}

/***** Predicate *****/

type predicateKind int

const (
	kindMatchAll predicateKind = iota
	kindComparison
	kindHasProductionVertex
	kindHasEndVertex
	kindAnd
	kindOr
	kindNot
)

// Predicate is a boolean expression tree over particle fields.
//
// The variants are: match-all (the zero value), comparison, vertex presence, And, Or and Not.
// Evaluation is pure.
type Predicate struct {
	kind     predicateKind
	field    Field
	op       Operator
	value    float64
	operands []Predicate
}

var (
	// MatchAll matches every particle.
	MatchAll = Predicate{}

	// HasProductionVertex matches particles that have a production vertex.
	HasProductionVertex = Predicate{kind: kindHasProductionVertex}

	// HasEndVertex matches particles that have an end vertex.
	HasEndVertex = Predicate{kind: kindHasEndVertex}
)

// All matches if every operand matches; no operands match everything.
func All(predicates ...Predicate) Predicate {
	return Predicate{kind: kindAnd, operands: predicates}
}

// Any matches if at least one operand matches; no operands match nothing.
func Any(predicates ...Predicate) Predicate {
	return Predicate{kind: kindOr, operands: predicates}
}

// Not negates a predicate.
func Not(predicate Predicate) Predicate {
	return Predicate{kind: kindNot, operands: []Predicate{predicate}}
}

func (pr Predicate) And(other Predicate, others ...Predicate) Predicate {
	return All(append([]Predicate{pr, other}, others...)...)
}

func (pr Predicate) Or(other Predicate, others ...Predicate) Predicate {
	return Any(append([]Predicate{pr, other}, others...)...)
}

func (pr Predicate) Not() Predicate {
	return Not(pr)
}

// IsMatchAll reports whether pr is the match-all predicate.
func (pr Predicate) IsMatchAll() bool {
	return pr.kind == kindMatchAll
}

// Match evaluates the predicate against p.
func (pr Predicate) Match(p *Particle) bool {
	switch pr.kind {
	case kindMatchAll:
		return true

	case kindComparison:
		return pr.op.apply(pr.field.value(p), pr.value)

	case kindHasProductionVertex:
		return p.productionVertex != 0

	case kindHasEndVertex:
		return p.endVertex != 0

	case kindAnd:
		for _, operand := range pr.operands {
			if !operand.Match(p) {
				return false
			}
		}

		return true

	case kindOr:
		for _, operand := range pr.operands {
			if operand.Match(p) {
				return true
			}
		}

		return false

	case kindNot:
		return !pr.operands[0].Match(p)

	default:
		return false
	}
}

// String renders the expression, e.g. "(status == 1 && !has_end_vertex)".
func (pr Predicate) String() string {
	switch pr.kind {
	case kindMatchAll:
		return "true"

	case kindComparison:
		return pr.field.String() + " " + pr.op.String() + " " + strconv.FormatFloat(pr.value, 'g', -1, 64)

	case kindHasProductionVertex:
		return "has_production_vertex"

	case kindHasEndVertex:
		return "has_end_vertex"

	case kindAnd:
		return pr.joinOperands(" && ", "true")

	case kindOr:
		return pr.joinOperands(" || ", "false")

	case kindNot:
		return "!" + pr.operands[0].String()

	default:
		return "unknown"
	}
}

func (pr Predicate) joinOperands(separator string, empty string) string {
	if len(pr.operands) == 0 {
		return empty
	}

	parts := make([]string, len(pr.operands))
	for i, operand := range pr.operands {
		parts[i] = operand.String()
	}

	return "(" + strings.Join(parts, separator) + ")"
}
