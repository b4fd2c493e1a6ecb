package gen

import (
	"strconv"
	"text/template"

	"builder-generator/internal/emit"
	"builder-generator/internal/plan"
)

// templateData holds all data needed for the builder template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	GenerateComments bool
	Builder          *emit.BuilderSpec
}

// buildTemplateData constructs the template data of one planned builder.
func (g *Generator) buildTemplateData(p *plan.Plan, b *plan.Builder) *templateData {
	return &templateData{
		PackageName:      p.PkgName,
		Filename:         g.Filename(b.Record.Name()),
		Imports:          g.collectImports(b),
		GenerateComments: g.config.GenerateComments,
		Builder:          &b.Spec,
	}
}

var templateFuncs = template.FuncMap{
	// self returns the builder type as returned by methods of the receiver.
	"self": func(b *emit.BuilderSpec, r emit.Receiver) string {
		if r.IsPointer() {
			return "*" + b.Self()
		}

		return b.Self()
	},
	"params": setterParams,
	"storedValue": func(s emit.SetterSpec) string {
		switch {
		case s.StripOption:
			return "&ptr"
		case s.StoreAs == emit.StorageOptional:
			return "&v"
		default:
			return "v"
		}
	},
	"duplicate": func(init emit.InitializerSpec) string {
		stored := "*b." + init.Storage

		switch init.Duplicate {
		case emit.DuplicateSlice:
			return "slices.Clone(" + stored + ")"
		case emit.DuplicateMap:
			return "maps.Clone(" + stored + ")"
		default:
			return stored
		}
	},
	"isKind": func(k emit.InitKind, name string) bool {
		return k.String() == name
	},
	"isFallback": func(f emit.Fallback, name string) bool {
		return f.String() == name
	},
	"quote": strconv.Quote,
}

// setterParams renders the parameter list of a setter.
func setterParams(s emit.SetterSpec) string {
	if s.Each != nil && s.Each.Map {
		return "key " + s.Each.Key + ", value " + s.Param
	}

	return "value " + s.Param
}

var builderTemplate = template.Must(template.New("builder").Funcs(templateFuncs).Parse(`// Code generated by builder-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{with .Builder}}{{$b := .}}
{{if $.GenerateComments}}// {{.Name}} builds {{.Record}} values.
{{end}}type {{.Name}}{{.TypeParams}} struct {
{{- range .Fields}}
	{{.Name}} {{.GoType}}
{{- end}}
}
{{if .Constructor}}
{{if $.GenerateComments}}// {{.Constructor}} returns an empty {{.Name}}.
{{end}}func {{.Constructor}}{{.TypeParams}}() {{self $b .Receiver}} {
	return {{if .Receiver.IsPointer}}&{{end}}{{.Self}}{}
}
{{end}}
{{- range .Setters}}
{{if $.GenerateComments}}{{if eq .Kind.String "each"}}// {{.Name}} adds one {{if .Each.Map}}entry{{else}}element{{end}} to {{.Field}}.
{{else if eq .Kind.String "try"}}// {{.Name}} sets {{.Field}} from a fallible conversion.
{{else}}// {{.Name}} sets {{.Field}}.
{{end}}{{end -}}
func (b {{self $b .Receiver}}) {{.Name}}({{params .}}) {{if eq .Kind.String "try"}}({{self $b .Receiver}}, error){{else}}{{self $b .Receiver}}{{end}} {
{{- if eq .Convert.String "into"}}
	v := value.Into()
{{- else if eq .Convert.String "try_into"}}
	v, err := value.TryInto()
	if err != nil {
		return b, err
	}
{{- else}}
	v := value
{{- end}}
{{- if .CloneFirst}}
	b = b.Clone()
{{- end}}
{{- if .Each}}
	var items {{.Each.Collection}}
	if b.{{.Storage}} != nil {
		items = {{if .Each.Map}}maps{{else}}slices{{end}}.Clone(*b.{{.Storage}})
	}
{{- if .Each.Map}}
	if items == nil {
		items = make({{.Each.Collection}})
	}
	items[key] = v
{{- else}}
	items = append(items, v)
{{- end}}
	b.{{.Storage}} = &items
{{- else}}
{{- if .StripOption}}
	ptr := &v
{{- end}}
	b.{{.Storage}} = {{storedValue .}}
{{- end}}
{{- if eq .Kind.String "try"}}
	return b, nil
{{- else}}
	return b
{{- end}}
}
{{end}}
{{- with .Build}}
{{if $.GenerateComments}}// {{.Name}} builds a {{$b.Record}}. On failure it returns the zero {{$b.Record}}
// and a {{$b.ErrorType}} error.
{{end}}func (b {{self $b .Receiver}}) {{.Name}}() ({{$b.RecordType}}, error) {
{{- if .Validate}}
	if err := {{.Validate}}({{if .Receiver.IsPointer}}*b{{else}}b{{end}}); err != nil {
		return {{$b.RecordType}}{}, {{.FromValidation}}(err)
	}
{{- end}}
{{- if .NeedsStructDefault}}
{{- if .StructDefault}}
	def := {{.StructDefault}}
{{- else}}
	var def {{$b.RecordType}}
{{- end}}
{{- end}}
	var out {{$b.RecordType}}
{{- $build := .}}
{{- range .Initializers}}
{{- if isKind .Kind "default"}}
{{- if isFallback .Fallback "explicit"}}
	out.{{.Field}} = {{.Expr}}
{{- else if isFallback .Fallback "struct_default"}}
	out.{{.Field}} = def.{{.Field}}
{{- end}}
{{- else if isKind .Kind "custom_build"}}
	out.{{.Field}} = {{.Expr}}
{{- else if isKind .Kind "move"}}
	out.{{.Field}} = b.{{.Storage}}
{{- else if isKind .Kind "sub_builder"}}
	sub{{.Field}}, err := b.{{.Storage}}.{{.SubBuilderFn}}()
	if err != nil {
		return {{$b.RecordType}}{}, {{$build.FromValidation}}(buildrt.NewSubfieldBuildError({{quote .Field}}, err))
	}
	out.{{.Field}} = sub{{.Field}}
{{- else if isFallback .Fallback "fail"}}
	if b.{{.Storage}} == nil {
		return {{$b.RecordType}}{}, {{$build.FromUninitialized}}(buildrt.NewUninitializedFieldError({{quote .Field}}))
	}
	out.{{.Field}} = {{duplicate .}}
{{- else}}
	if b.{{.Storage}} != nil {
		out.{{.Field}} = {{duplicate .}}
	}
{{- if isFallback .Fallback "explicit"}} else {
		out.{{.Field}} = {{.Expr}}
	}
{{- else if isFallback .Fallback "struct_default"}} else {
		out.{{.Field}} = def.{{.Field}}
	}
{{- end}}
{{- end}}
{{- end}}
{{- if .PostBuild}}
	if err := {{.PostBuild}}(&out); err != nil {
		return {{$b.RecordType}}{}, {{.FromValidation}}(err)
	}
{{- end}}
	return out, nil
}
{{end}}
{{- if .Clone}}
{{if $.GenerateComments}}// Clone returns a copy of the builder. Stored values are shared: setters
// replace them and never modify them in place.
{{end}}func (b *{{.Self}}) Clone() *{{.Self}} {
	out := *b
	return &out
}
{{end}}
{{- if .Stringer}}
{{if $.GenerateComments}}// String lists the fields set so far.
{{end}}func (b {{self $b .Receiver}}) String() string {
	var sb strings.Builder
	sb.WriteString("{{.Name}}{")
{{- range $i, $f := .Fields}}
{{- if $i}}
	sb.WriteString(", ")
{{- end}}
	sb.WriteString("{{$f.Field}}: ")
{{- if eq $f.Kind.String "optional"}}
	if b.{{$f.Name}} != nil {
		fmt.Fprintf(&sb, "%v", *b.{{$f.Name}})
	} else {
		sb.WriteString("<unset>")
	}
{{- else}}
	fmt.Fprintf(&sb, "%v", b.{{$f.Name}})
{{- end}}
{{- end}}
	sb.WriteString("}")
	return sb.String()
}
{{end}}
{{- with .Error}}
{{if $.GenerateComments}}// {{.KindType}} tells the variants of {{.Name}} apart.
{{end}}type {{.KindType}} int

const (
{{- range $i, $v := .Variants}}
	{{$v.Const}}{{if eq $i 0}} {{$.Builder.Error.KindType}} = iota + 1{{end}}
{{- end}}
)

{{if $.GenerateComments}}// {{.Name}} is the error returned when building with {{$b.Name}} fails.
{{end}}type {{.Name}} struct {
	Kind {{.KindType}}
	// Field is the unset field of an uninitialized field error.
	Field string
	// Message describes a validation error.
	Message string
	// Err is the converted error.
	Err error
}

func (e *{{.Name}}) Error() string {
	if e.Kind == {{.Uninitialized}} {
		return fmt.Sprintf("` + "`%s`" + ` must be initialized", e.Field)
	}

	return e.Message
}

func (e *{{.Name}}) Unwrap() error {
	return e.Err
}

{{if $.GenerateComments}}// {{.FromUninitialized}} converts an unset field error.
{{end}}func {{.FromUninitialized}}(err buildrt.UninitializedFieldError) *{{.Name}} {
	return &{{.Name}}{Kind: {{.Uninitialized}}, Field: err.Field, Message: err.Error(), Err: err}
}

{{if $.GenerateComments}}// {{.FromValidation}} converts a validation failure.
{{end}}func {{.FromValidation}}(err error) *{{.Name}} {
	return &{{.Name}}{Kind: {{.Validation}}, Message: err.Error(), Err: err}
}
{{end}}
{{- end}}
`))
