package config

import "github.com/invopop/jsonschema"

// GenerateJSONSchema generates a JSON schema for the configuration
func GenerateJSONSchema() (*jsonschema.Schema, error) {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  false,
	}

	schema := r.Reflect(&ConfigSchema{})

	schema.Title = "Alpha Configuration Schema"
	schema.Description = "Configuration schema for the Alpha chat client"

	return schema, nil
}
