package datatable

import "strings"

// SemanticType decides how a column's values are filtered and sorted.
type SemanticType string

const (
	TypeText      SemanticType = "text"
	TypeNumber    SemanticType = "number"
	TypeDate      SemanticType = "date"
	TypeBoolean   SemanticType = "boolean"
	TypeSelect    SemanticType = "select"
	TypeReference SemanticType = "reference"
	TypeCustom    SemanticType = "custom"
)

// Operator is the comparison a column filter applies.
type Operator string

const (
	OpContains   Operator = "contains"
	OpEquals     Operator = "eq"
	OpStartsWith Operator = "starts"
	OpEndsWith   Operator = "ends"
	OpGreater    Operator = "gt"
	OpGreaterEq  Operator = "gte"
	OpLess       Operator = "lt"
	OpLessEq     Operator = "lte"
)

// operatorAliases maps the long operator names used by list-page clients
// to the short wire values.
var operatorAliases = map[string]Operator{
	"equals":     OpEquals,
	"startswith": OpStartsWith,
	"endswith":   OpEndsWith,
}

// ParseOperator normalizes an operator name.
// Unknown names are returned unchanged and later fall back
// to the default operator of the filtered column's type.
func ParseOperator(s string) Operator {
	s = strings.ToLower(strings.TrimSpace(s))
	if op, ok := operatorAliases[s]; ok {
		return op
	}
	return Operator(s)
}

// Direction is the order of the active sort key.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Filter is a single column filter. A View holds at most one per column.
type Filter struct {
	Column   string       `json:"column"`
	Type     SemanticType `json:"type,omitempty"`
	Operator Operator     `json:"operator,omitempty"`
	Value    any          `json:"value"`
}

// IsEmpty reports whether the filter has no value and therefore
// lets every row pass. Only nil and blank strings count as empty,
// false and 0 are real filter values.
func (f Filter) IsEmpty() bool {
	switch v := f.Value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

// SortKey is the single active sort of a view.
type SortKey struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Record is the generic keyed row used for catalog entities.
type Record map[string]any

// Field implements Fielder.
func (r Record) Field(id string) (any, bool) {
	v, ok := r[id]
	return v, ok
}

// Fielder is implemented by rows that can look up a value by column id.
type Fielder interface {
	Field(id string) (any, bool)
}

// Field returns the value stored under id in row, or nil if row
// neither implements Fielder nor is a map[string]any.
func Field[R any](row R, id string) any {
	switch r := any(row).(type) {
	case Fielder:
		v, _ := r.Field(id)
		return v
	case map[string]any:
		return r[id]
	}
	return nil
}
