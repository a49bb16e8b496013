package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/docs"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// transformRefs rewrites #/definitions/ refs to #/components/schemas/ and converts
// Swagger 2.0 parameters to OpenAPI 3.0 form
func transformRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return transformParameter(v)
			}
		}

		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				result[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			result[key] = transformRefs(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = transformRefs(item)
		}
		return result
	default:
		return data
	}
}

func transformParameter(param map[string]interface{}) map[string]interface{} {
	// body and formData parameters are lifted into requestBody by transformOperation
	if in := param["in"]; in == "body" || in == "formData" {
		return param
	}

	result := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = transformRefs(val)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}
	return result
}

// transformOperation moves body and formData parameters into an OpenAPI 3 requestBody
func transformOperation(op map[string]interface{}) map[string]interface{} {
	params, _ := op["parameters"].([]interface{})
	if len(params) == 0 {
		return op
	}

	kept := make([]interface{}, 0, len(params))
	formProps := make(map[string]interface{})
	var formRequired []interface{}

	for _, p := range params {
		param, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		switch param["in"] {
		case "body":
			op["requestBody"] = map[string]interface{}{
				"required": param["required"],
				"content": map[string]interface{}{
					"application/json": map[string]interface{}{"schema": transformRefs(param["schema"])},
				},
			}
		case "formData":
			name, _ := param["name"].(string)
			prop := map[string]interface{}{"type": param["type"]}
			if param["type"] == "file" {
				prop = map[string]interface{}{"type": "string", "format": "binary"}
			}
			formProps[name] = prop
			if req, _ := param["required"].(bool); req {
				formRequired = append(formRequired, name)
			}
		default:
			kept = append(kept, param)
		}
	}

	if len(formProps) > 0 {
		schema := map[string]interface{}{"type": "object", "properties": formProps}
		if len(formRequired) > 0 {
			schema["required"] = formRequired
		}
		op["requestBody"] = map[string]interface{}{
			"content": map[string]interface{}{
				"multipart/form-data": map[string]interface{}{"schema": schema},
			},
		}
	}
	op["parameters"] = kept
	return op
}

func transformPaths(paths map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(paths))
	for path, item := range paths {
		methods, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		converted := make(map[string]interface{}, len(methods))
		for method, op := range methods {
			operation, ok := op.(map[string]interface{})
			if !ok {
				converted[method] = op
				continue
			}
			converted[method] = transformRefs(transformOperation(operation))
		}
		result[path] = converted
	}
	return result
}

// ServeOpenAPI3Spec serves the swagger spec converted to OpenAPI 3.0
func ServeOpenAPI3Spec(publicURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return NewInternalError(c, "Failed to read swagger doc")
		}

		var swagger2 map[string]interface{}
		if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
			return NewInternalError(c, "Failed to parse swagger doc")
		}

		info, _ := swagger2["info"].(map[string]interface{})
		paths, _ := swagger2["paths"].(map[string]interface{})

		components := make(map[string]interface{})
		if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
			components["securitySchemes"] = secDefs
		}
		if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
			components["schemas"] = transformRefs(definitions)
		}

		servers := []Server{{URL: "http://localhost:8080/api/v1", Description: "Local Development"}}
		if publicURL != "" {
			servers = append(servers, Server{URL: strings.TrimRight(publicURL, "/") + "/api/v1", Description: "Production"})
		}

		return c.JSON(http.StatusOK, OpenAPI3Spec{
			OpenAPI:    "3.0.3",
			Info:       info,
			Servers:    servers,
			Paths:      transformPaths(paths),
			Components: components,
		})
	}
}
