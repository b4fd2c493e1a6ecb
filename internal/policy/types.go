package policy

import (
	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/directive"
)

// Global defaults.
const (
	DefaultBuildFnName    = "Build"
	DefaultSubBuilderFn   = "Build"
	BuilderSuffix         = "Builder"
	ErrorSuffix           = "Error"
	ConstructorPrefix     = "New"
	UninitializedConvName = "FromUninitialized"
	ValidationConvName    = "FromValidation"
)

// DefaultSource says where the value of an unset field comes from.
type DefaultSource int

const (
	// DefaultNone means the field has no default: building without a value fails.
	DefaultNone DefaultSource = iota
	// DefaultExplicit is a field-level default expression.
	DefaultExplicit
	// DefaultZero is the bare "default" word: the zero value of the type.
	DefaultZero
	// DefaultStruct takes the field from the record-wide default value.
	DefaultStruct
)

// String returns a human-readable default source.
func (d DefaultSource) String() string {
	switch d {
	case DefaultNone:
		return "none"
	case DefaultExplicit:
		return "explicit"
	case DefaultZero:
		return "zero"
	case DefaultStruct:
		return "struct"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the default source as its name.
func (d DefaultSource) MarshalYAML() (any, error) {
	return d.String(), nil
}

// RecordPolicy is the resolved configuration of one record's builder.
type RecordPolicy struct {
	// Record is the record type name.
	Record string `yaml:"record"`
	// PkgName is the package of the record.
	PkgName string `yaml:"package"`
	// TypeParams of a generic record, propagated to the builder.
	TypeParams []analyze.TypeParam `yaml:"type_params,omitempty"`
	// RecordExported is the record's own export status.
	RecordExported bool `yaml:"-"`

	// Builder is the builder type name.
	Builder string `yaml:"builder"`
	// BuilderVis is the builder type visibility.
	BuilderVis directive.Visibility `yaml:"builder_vis"`
	// ExpressedVis is the visibility written at record scope, inherited by
	// setters. Nil when none was written.
	ExpressedVis *directive.Visibility `yaml:"expressed_vis,omitempty"`
	// StorageVis is the record-scope "field(public|private)" visibility.
	StorageVis *directive.Visibility `yaml:"storage_vis,omitempty"`
	// Pattern is the record-wide pattern.
	Pattern directive.Pattern `yaml:"pattern"`
	// Setter holds record-scope setter defaults.
	Setter SetterDefaults `yaml:"setter"`
	// TrySetter enables fallible setters for all fields.
	TrySetter bool `yaml:"try_setter,omitempty"`
	// Default is the record-wide default value expression, if any.
	Default *directive.DefaultExpr `yaml:"default,omitempty"`

	BuildFn BuildFnPolicy `yaml:"build_fn"`
	Error   ErrorPolicy   `yaml:"error"`

	// Capabilities of the builder type.
	Capabilities Capabilities `yaml:"capabilities"`
	// Constructor is the name of the generated constructor function.
	Constructor string `yaml:"constructor,omitempty"`
	// RequiresClone is true when the record or any field uses a pattern that
	// duplicates builder state.
	RequiresClone bool `yaml:"requires_clone"`
	// SuppressDeriveClone keeps the Clone method from being generated.
	SuppressDeriveClone bool `yaml:"suppress_derive_clone,omitempty"`
	// ExplicitClone is true when "derive" lists Clone.
	ExplicitClone bool `yaml:"-"`
}

// TypeParamsDecl returns the declaration form of the type parameters.
func (rp *RecordPolicy) TypeParamsDecl() string {
	rec := analyze.Record{TypeParams: rp.TypeParams}
	return rec.TypeParamsDecl()
}

// TypeArgs returns the instantiation form of the type parameters.
func (rp *RecordPolicy) TypeArgs() string {
	rec := analyze.Record{TypeParams: rp.TypeParams}
	return rec.TypeArgs()
}

// SetterDefaults are setter settings inherited by every field.
type SetterDefaults struct {
	Prefix      string `yaml:"prefix,omitempty"`
	Into        bool   `yaml:"into,omitempty"`
	StripOption bool   `yaml:"strip_option,omitempty"`
	// Enabled is the record-scope setter enablement; nil when not given.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// BuildFnPolicy is the resolved build method configuration.
type BuildFnPolicy struct {
	Enabled   bool                 `yaml:"enabled"`
	Name      string               `yaml:"name"`
	Vis       directive.Visibility `yaml:"vis"`
	Validate  string               `yaml:"validate,omitempty"`
	PostBuild string               `yaml:"post_build,omitempty"`
}

// ErrorPolicy is the error taxonomy choice of a record.
type ErrorPolicy struct {
	// Generated is true when the builder gets its own error type.
	Generated bool `yaml:"generated"`
	// Type is the generated error type name or the external type expression.
	Type string `yaml:"type"`
	// Uninitialized names the conversion from buildrt.UninitializedFieldError.
	Uninitialized string `yaml:"uninitialized,omitempty"`
	// Validation names the conversion from a hook or sub-builder error.
	Validation string `yaml:"validation,omitempty"`
}

// Capabilities are the extra methods and functions of a builder.
type Capabilities struct {
	// Default is the New<Builder> constructor.
	Default  bool `yaml:"default"`
	Clone    bool `yaml:"clone"`
	Stringer bool `yaml:"stringer"`
}

// FieldPolicy is the resolved configuration of one field.
type FieldPolicy struct {
	// Field is the schema of the field.
	Field analyze.Field `yaml:"-"`
	// Name is the record field name.
	Name string `yaml:"name"`

	SetterEnabled bool                 `yaml:"setter_enabled"`
	FieldEnabled  bool                 `yaml:"field_enabled"`
	SetterName    string               `yaml:"setter_name"`
	SetterVis     directive.Visibility `yaml:"setter_vis"`
	StorageVis    directive.Visibility `yaml:"storage_vis"`
	Pattern       directive.Pattern    `yaml:"pattern"`
	Into          bool                 `yaml:"into,omitempty"`
	StripOption   bool                 `yaml:"strip_option,omitempty"`
	TrySetter     bool                 `yaml:"try_setter,omitempty"`

	Default     DefaultSource `yaml:"default"`
	DefaultExpr string        `yaml:"default_expr,omitempty"`

	Each       *EachPolicy       `yaml:"each,omitempty"`
	SubBuilder *SubBuilderPolicy `yaml:"sub_builder,omitempty"`
	Custom     *CustomField      `yaml:"custom,omitempty"`
}

// EachPolicy configures the accumulating setter of a slice or map field.
type EachPolicy struct {
	Name string           `yaml:"name"`
	Into bool             `yaml:"into,omitempty"`
	Kind analyze.TypeKind `yaml:"-"`
	Elem string           `yaml:"elem"`
	Key  string           `yaml:"key,omitempty"`
}

// IsMap reports whether entries are inserted into a map.
func (e *EachPolicy) IsMap() bool {
	return e.Kind == analyze.TypeKindMap
}

// SubBuilderPolicy backs a field with the builder of its type.
type SubBuilderPolicy struct {
	// BuilderType is the nested builder type.
	BuilderType string `yaml:"builder_type"`
	// FnName is the build method of the nested builder.
	FnName string `yaml:"fn_name"`
}

// CustomField is a field whose builder storage type or build expression is
// given by the user.
type CustomField struct {
	// Type is the storage type; empty keeps the optional field type.
	Type string `yaml:"type,omitempty"`
	// Build is the expression producing the record value; empty moves the
	// stored value.
	Build string `yaml:"build,omitempty"`
}

// StorageType returns the type of the value stored by setters: the custom
// type, the sub-builder type or the field type.
func (fp *FieldPolicy) StorageType() string {
	switch {
	case fp.SubBuilder != nil:
		return fp.SubBuilder.BuilderType
	case fp.Custom != nil && fp.Custom.Type != "":
		return fp.Custom.Type
	default:
		return fp.Field.Type
	}
}

// IsDirect reports whether the builder stores the value itself rather than
// an optional pointer to it.
func (fp *FieldPolicy) IsDirect() bool {
	return fp.SubBuilder != nil || (fp.Custom != nil && fp.Custom.Type != "")
}

// HasCustomBuild reports whether a build expression produces the value.
func (fp *FieldPolicy) HasCustomBuild() bool {
	return fp.Custom != nil && fp.Custom.Build != ""
}

// CanFailUninitialized reports whether building can fail because this field
// was never set: it is stored optionally, has no build expression and no
// default of any kind.
func (fp *FieldPolicy) CanFailUninitialized() bool {
	return fp.FieldEnabled &&
		!fp.IsDirect() &&
		!fp.HasCustomBuild() &&
		fp.Default == DefaultNone
}

// UsesStructDefault reports whether the record-wide default value may be
// read when building this field.
func (fp *FieldPolicy) UsesStructDefault() bool {
	if fp.Default != DefaultStruct {
		return false
	}

	if !fp.FieldEnabled {
		return true
	}

	return !fp.IsDirect() && !fp.HasCustomBuild()
}
