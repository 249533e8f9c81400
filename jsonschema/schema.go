package jsonschema

// Schema is a minimal JSON Schema representation used to publish the User
// wire format.
type Schema struct {
	Schema string `json:"$schema,omitempty"`
	Title  string `json:"title,omitempty"`

	// Core
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
}

// Draft is the dialect URI stamped on exported documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"
