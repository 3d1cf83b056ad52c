package yaml

// definitionSchema is the JSON Schema every definition document must
// satisfy before unmarshaling. Per-op field requirements are enforced
// separately by Definition.Validate.
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "expr"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "version": {"type": "string"},
    "expr": {"$ref": "#/definitions/node"}
  },
  "definitions": {
    "node": {
      "type": "object",
      "required": ["op"],
      "additionalProperties": false,
      "properties": {
        "op": {
          "type": "string",
          "enum": ["value", "param", "add", "sub", "mul", "div", "neg", "script", "jsonpath"]
        },
        "value": {"type": "number"},
        "name": {"type": "string"},
        "left": {"$ref": "#/definitions/node"},
        "right": {"$ref": "#/definitions/node"},
        "expr": {"$ref": "#/definitions/node"},
        "source": {"type": "string"},
        "path": {"type": "string"},
        "doc": {"type": "string"}
      }
    }
  }
}`
