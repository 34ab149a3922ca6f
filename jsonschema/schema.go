package jsonschema

// Schema is a minimal JSON Schema representation used for export and import.
// Only the vocabulary the engine can express natively is modeled; anything
// else is rejected at decode time.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Any type; a single-element Enum encodes literal equality.
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum bool     `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum bool     `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	PatternProperties    map[string]*Schema `json:"patternProperties,omitempty" yaml:"patternProperties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Vendor extension carried on a patternProperties sub-schema: bounds on
	// how many properties of the enclosing object may match its key pattern.
	// JSON Schema has no keyword for this, so quantified key multiplicity
	// would not survive an export/import cycle without it.
	MinMatches *int `json:"x-minMatches,omitempty" yaml:"x-minMatches,omitempty"`
	MaxMatches *int `json:"x-maxMatches,omitempty" yaml:"x-maxMatches,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
}

// IsEmpty reports whether s carries no constraint at all (the "accept
// anything" schema).
func (s *Schema) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.Type == "" && s.Format == "" && s.Ref == "" && s.Default == nil &&
		len(s.Enum) == 0 &&
		s.Minimum == nil && s.Maximum == nil && s.MultipleOf == nil &&
		s.MinLength == nil && s.MaxLength == nil && s.Pattern == "" &&
		len(s.Properties) == 0 && len(s.Required) == 0 &&
		len(s.PatternProperties) == 0 && s.AdditionalProperties == nil &&
		s.MinMatches == nil && s.MaxMatches == nil &&
		s.Items == nil && s.MinItems == nil && s.MaxItems == nil &&
		len(s.AnyOf) == 0 && len(s.OneOf) == 0
}

// Float returns a pointer to f, a small helper for literals.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n, a small helper for literals.
func Int(n int) *int { return &n }
