// Package doclib builds the OpenAPI 3.1 document served at /openapi from the Doc of
// every registered route.
package doclib

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type SetupData struct {
	URL             string
	ErrorStruct     any
	Info            Info
	errorStructName string
}

var (
	DocsSetupData *SetupData
	stringType    = openapi3.Types([]string{"string"})
)

func Setup() {
	if DocsSetupData == nil {
		panic("DocsSetupData is nil")
	}

	var err error

	api = newOpenapi()

	badRequestSchema, err = openapi3gen.NewSchemaRefForValue(DocsSetupData.ErrorStruct, nil, SchemaInject(DocsSetupData.ErrorStruct))
	if err != nil {
		panic(err)
	}

	DocsSetupData.errorStructName = schemaName(DocsSetupData.ErrorStruct)

	IdSchema, err = openapi3gen.NewSchemaRefForValue(uint(1), nil)
	if err != nil {
		panic(err)
	}

	StringSchema, err = openapi3gen.NewSchemaRefForValue("", nil)
	if err != nil {
		panic(err)
	}

	IntSchema, err = openapi3gen.NewSchemaRefForValue(0, nil)
	if err != nil {
		panic(err)
	}

	BoolSchema, err = openapi3gen.NewSchemaRefForValue(true, nil)
	if err != nil {
		panic(err)
	}

	api.Components.Schemas[DocsSetupData.errorStructName] = badRequestSchema

	api.Info = DocsSetupData.Info
	api.Servers[0].URL = DocsSetupData.URL
}

func newOpenapi() Openapi {
	return Openapi{
		OpenAPI: "3.1.0",
		Servers: []Server{
			{
				Description: "Cadrebook API",
				Variables:   map[string]any{},
			},
		},
		Paths: orderedmap.New[string, Path](),
		Components: Component{
			Schemas:       make(map[string]any),
			Security:      make(map[string]Security),
			RequestBodies: make(map[string]ReqBody),
		},
	}
}

var api = newOpenapi()

var badRequestSchema *openapi3.SchemaRef

var (
	IdSchema     *openapi3.SchemaRef
	StringSchema *openapi3.SchemaRef
	IntSchema    *openapi3.SchemaRef
	BoolSchema   *openapi3.SchemaRef
)

func schemaName(v any) string {
	name := reflect.TypeOf(v).String()
	name = strings.TrimPrefix(name, "[]")
	name = strings.TrimPrefix(name, "*")

	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	if reflect.TypeOf(v).Kind() == reflect.Slice {
		name += "List"
	}

	return name
}

func AddTag(name, description string) {
	api.Tags = append(api.Tags, Tag{
		Name:        name,
		Description: description,
	})
}

// AddBearerSecuritySchema registers a JWT bearer scheme under id.
func AddBearerSecuritySchema(id, description string) {
	api.Components.Security[id] = Security{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
		Description:  description,
	}
}

func SchemaInject(s any) openapi3gen.Option {
	return openapi3gen.SchemaCustomizer(func(name string, ft reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
		if tag.Get("description") != "" {
			schema.Description = tag.Get("description")
		}

		if tag.Get("enum") != "" {
			schema.Enum = []any{}

			for _, val := range strings.Split(tag.Get("enum"), ",") {
				schema.Enum = append(schema.Enum, val)
			}
		}

		if tag.Get("validate") != "" {
			for _, val := range strings.Split(tag.Get("validate"), ",") {
				key, arg, _ := strings.Cut(val, "=")
				switch key {
				case "required":
					schema.Nullable = false
				case "oneof":
					var enum []any

					for _, v := range strings.Split(arg, " ") {
						enum = append(enum, v)
					}

					schema.Enum = enum
				case "max":
					if n, err := strconv.ParseUint(arg, 10, 64); err == nil && ft.Kind() == reflect.String {
						schema.MaxLength = &n
					}
				case "min":
					if n, err := strconv.ParseUint(arg, 10, 64); err == nil && ft.Kind() == reflect.String {
						schema.MinLength = n
					}
				case "email":
					schema.Format = "email"
				case "datetime":
					schema.Format = "date"
				}
			}
		}

		switch ft.Name() {
		case "Time":
			schema.Type = &stringType
			schema.Format = "date-time"
		}

		if ft.Kind() == reflect.Pointer {
			schema.Nullable = true
		}

		if tag.Get("type") != "" {
			typ := openapi3.Types([]string{tag.Get("type")})
			schema.Type = &typ
			schema.Properties = nil
			schema.Required = nil
			schema.Nullable = true
		}

		return nil
	})
}

func errorResponse(status int) Response {
	return Response{
		Description: http.StatusText(status),
		Content: map[string]SchemaResp{
			"application/json": {
				Schema: Schema{
					Ref: "#/components/schemas/" + DocsSetupData.errorStructName,
				},
			},
		},
	}
}

func Route(doc *Doc) {
	if len(doc.Params) == 0 {
		doc.Params = []Parameter{}
	}

	if len(doc.AuthType) == 0 {
		doc.AuthType = []string{}
	}

	if len(doc.Tags) == 0 {
		panic("no tags set in route: " + doc.Pattern)
	}

	for _, param := range doc.Params {
		if param.In == "" {
			panic("no in set in route: " + doc.Pattern)
		}

		if param.Name == "" {
			panic("no name set in route: " + doc.Pattern)
		}

		if param.Schema == nil {
			panic("no schema set in route: " + doc.Pattern)
		}

		if param.Description == "" {
			panic("no description set in route: " + doc.Pattern)
		}
	}

	if doc.OpId == "" {
		panic("no opId set in route: " + doc.Pattern)
	}

	if doc.Pattern == "" {
		panic("no path set in route: " + doc.OpId)
	}

	status := doc.SuccessStatus
	if status == 0 {
		status = http.StatusOK
	}

	success := Response{Description: http.StatusText(status)}

	if status != http.StatusNoContent {
		if doc.Resp == nil {
			panic("no response set in route: " + doc.Pattern)
		}

		name := doc.RespName
		if name == "" {
			name = schemaName(doc.Resp)
		}

		if _, ok := api.Components.Schemas[name]; !ok {
			schemaRef, err := openapi3gen.NewSchemaRefForValue(doc.Resp, nil, SchemaInject(doc.Resp))
			if err != nil {
				panic(err)
			}

			api.Components.Schemas[name] = schemaRef
		}

		success.Content = map[string]SchemaResp{
			"application/json": {
				Schema: Schema{Ref: "#/components/schemas/" + name},
			},
		}
	}

	// Add in requests
	var reqBodyRef *Schema
	if doc.Req != nil {
		schemaRef, err := openapi3gen.NewSchemaRefForValue(doc.Req, nil, SchemaInject(doc.Req))
		if err != nil {
			panic(err)
		}

		reqSchemaName := doc.Method + "_" + schemaName(doc.Req)

		api.Components.RequestBodies[reqSchemaName] = ReqBody{
			Required: true,
			Content: map[string]Content{
				"application/json": {
					Schema: schemaRef,
				},
			},
		}

		reqBodyRef = &Schema{Ref: "#/components/requestBodies/" + reqSchemaName}
	}

	operationData := &Operation{
		Tags:        doc.Tags,
		Summary:     doc.Summary,
		Description: doc.Description,
		ID:          doc.OpId,
		Parameters:  doc.Params,
		RequestBody: reqBodyRef,
		Responses: map[string]Response{
			strconv.Itoa(status): success,
			"400":                errorResponse(http.StatusBadRequest),
		},
	}

	if len(doc.AuthType) > 0 && !doc.AuthOptional {
		operationData.Responses["401"] = errorResponse(http.StatusUnauthorized)
	}

	for _, code := range doc.Errors {
		operationData.Responses[strconv.Itoa(code)] = errorResponse(code)
	}

	operationData.Security = []map[string][]string{}

	for _, auth := range doc.AuthType {
		operationData.Security = append(operationData.Security, map[string][]string{
			auth: {},
		})
	}

	// An empty requirement marks the credential as optional
	if doc.AuthOptional {
		operationData.Security = append(operationData.Security, map[string][]string{})
	}

	op, _ := api.Paths.Get(doc.Pattern)

	switch strings.ToLower(doc.Method) {
	case "head":
		op.Head = operationData
	case "get":
		op.Get = operationData
	case "post":
		op.Post = operationData
	case "put":
		op.Put = operationData
	case "patch":
		op.Patch = operationData
	case "delete":
		op.Delete = operationData
	default:
		panic("unknown method: " + doc.Method)
	}

	api.Paths.Set(doc.Pattern, op)
}

func GetSchema() Openapi {
	return api
}
