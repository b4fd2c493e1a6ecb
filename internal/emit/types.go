package emit

import (
	"builder-generator/internal/common"
	"builder-generator/internal/directive"
)

// Receiver is the receiver shape of a builder method.
type Receiver int

const (
	// ReceiverPointer methods take and return *Builder.
	ReceiverPointer Receiver = iota
	// ReceiverValue methods take and return Builder by value.
	ReceiverValue
)

// String returns the receiver shape name.
func (r Receiver) String() string {
	switch r {
	case ReceiverPointer:
		return "pointer"
	case ReceiverValue:
		return "value"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the receiver as its name.
func (r Receiver) MarshalYAML() (any, error) {
	return r.String(), nil
}

// IsPointer reports whether methods take *Builder.
func (r Receiver) IsPointer() bool {
	return r == ReceiverPointer
}

// receiverOf maps a pattern to the receiver of its methods.
func receiverOf(p directive.Pattern) Receiver {
	if p.ByValue() {
		return ReceiverValue
	}

	return ReceiverPointer
}

// StorageKind tells how the builder holds the value of a field.
type StorageKind int

const (
	// StorageOptional stores *T, nil until a setter runs.
	StorageOptional StorageKind = iota
	// StorageDirect stores a user-chosen type as is.
	StorageDirect
	// StorageSubBuilder stores the builder of the field type.
	StorageSubBuilder
)

// String returns the storage kind name.
func (k StorageKind) String() string {
	switch k {
	case StorageOptional:
		return "optional"
	case StorageDirect:
		return "direct"
	case StorageSubBuilder:
		return "sub_builder"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the storage kind as its name.
func (k StorageKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// StorageFieldSpec is one field of the builder struct.
type StorageFieldSpec struct {
	// Name is the Go field name in the builder.
	Name string `yaml:"name"`
	// Field is the record field the storage belongs to.
	Field string `yaml:"field"`
	// Type is the value type; optional storage holds a pointer to it.
	Type string               `yaml:"type"`
	Kind StorageKind          `yaml:"kind"`
	Vis  directive.Visibility `yaml:"vis"`
}

// GoType returns the declared type of the builder field.
func (f StorageFieldSpec) GoType() string {
	if f.Kind == StorageOptional {
		return "*" + f.Type
	}

	return f.Type
}

// SetterKind distinguishes the generated setter flavors.
type SetterKind int

const (
	// SetterAssign replaces the stored value.
	SetterAssign SetterKind = iota
	// SetterTry replaces the stored value after a fallible conversion.
	SetterTry
	// SetterEach adds one element or entry to a collection.
	SetterEach
)

// String returns the setter kind name.
func (k SetterKind) String() string {
	switch k {
	case SetterAssign:
		return "assign"
	case SetterTry:
		return "try"
	case SetterEach:
		return "each"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the setter kind as its name.
func (k SetterKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Conversion is the conversion applied to the setter argument.
type Conversion int

const (
	// ConvertNone uses the argument as is.
	ConvertNone Conversion = iota
	// ConvertInto calls Into on a buildrt.Into argument.
	ConvertInto
	// ConvertTryInto calls TryInto on a buildrt.TryInto argument and returns
	// its error.
	ConvertTryInto
)

// String returns the conversion name.
func (c Conversion) String() string {
	switch c {
	case ConvertNone:
		return "none"
	case ConvertInto:
		return "into"
	case ConvertTryInto:
		return "try_into"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the conversion as its name.
func (c Conversion) MarshalYAML() (any, error) {
	return c.String(), nil
}

// SetterSpec describes one setter method.
type SetterSpec struct {
	Kind SetterKind `yaml:"kind"`
	// Name is the Go method name.
	Name string `yaml:"name"`
	// Field is the record field set.
	Field string `yaml:"field"`
	// Storage is the builder field written by the setter.
	Storage  string      `yaml:"storage"`
	StoreAs  StorageKind `yaml:"store_as"`
	Receiver Receiver    `yaml:"receiver"`
	// CloneFirst duplicates the builder and modifies the copy.
	CloneFirst bool `yaml:"clone_first,omitempty"`
	// Param is the Go type of the value parameter.
	Param   string     `yaml:"param"`
	Convert Conversion `yaml:"convert"`
	// StripOption takes the pointer element and stores its address.
	StripOption bool `yaml:"strip_option,omitempty"`
	// Each is set for SetterEach.
	Each *EachSpec `yaml:"each,omitempty"`
}

// EachSpec describes the collection updated by an accumulating setter.
type EachSpec struct {
	Map bool `yaml:"map,omitempty"`
	// Collection is the slice or map type of the field.
	Collection string `yaml:"collection"`
	// Key is the map key type.
	Key string `yaml:"key,omitempty"`
}

// InitKind is the way the build method produces one record field.
type InitKind int

const (
	// InitDefault always uses the default: the field has no storage.
	InitDefault InitKind = iota
	// InitCustomBuild evaluates the user build expression.
	InitCustomBuild
	// InitMove moves a directly stored value.
	InitMove
	// InitSubBuilder calls the nested builder.
	InitSubBuilder
	// InitStored uses the stored value if set, the fallback otherwise.
	InitStored
)

// String returns the initializer kind name.
func (k InitKind) String() string {
	switch k {
	case InitDefault:
		return "default"
	case InitCustomBuild:
		return "custom_build"
	case InitMove:
		return "move"
	case InitSubBuilder:
		return "sub_builder"
	case InitStored:
		return "stored"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the initializer kind as its name.
func (k InitKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Fallback is the value of a field that was never set.
type Fallback int

const (
	// FallbackNone means the initializer never falls back.
	FallbackNone Fallback = iota
	// FallbackExplicit evaluates the field default expression.
	FallbackExplicit
	// FallbackStructDefault reads the field from the record-wide default.
	FallbackStructDefault
	// FallbackZero leaves the zero value of the type.
	FallbackZero
	// FallbackFail fails the build with an uninitialized field error.
	FallbackFail
)

// String returns the fallback name.
func (f Fallback) String() string {
	switch f {
	case FallbackNone:
		return "none"
	case FallbackExplicit:
		return "explicit"
	case FallbackStructDefault:
		return "struct_default"
	case FallbackZero:
		return "zero"
	case FallbackFail:
		return "fail"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the fallback as its name.
func (f Fallback) MarshalYAML() (any, error) {
	return f.String(), nil
}

// Duplicate is the copy made of a stored value by non-owned patterns.
type Duplicate int

const (
	// DuplicateNone moves (or copies, for plain values) the stored value.
	DuplicateNone Duplicate = iota
	// DuplicateSlice copies the backing array.
	DuplicateSlice
	// DuplicateMap copies the entries.
	DuplicateMap
)

// String returns the duplication name.
func (d Duplicate) String() string {
	switch d {
	case DuplicateNone:
		return "none"
	case DuplicateSlice:
		return "slice"
	case DuplicateMap:
		return "map"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML writes the duplication as its name.
func (d Duplicate) MarshalYAML() (any, error) {
	return d.String(), nil
}

// InitializerSpec describes how the build method sets one record field.
type InitializerSpec struct {
	// Field is the record field name.
	Field string `yaml:"field"`
	// Storage is the builder field read, empty for InitDefault and InitCustomBuild.
	Storage string   `yaml:"storage,omitempty"`
	Kind    InitKind `yaml:"kind"`
	// Duplicate applies to InitStored.
	Duplicate Duplicate `yaml:"duplicate,omitempty"`
	Fallback  Fallback  `yaml:"fallback"`
	// Expr is the build expression or the explicit default expression.
	Expr string `yaml:"expr,omitempty"`
	// SubBuilderFn is the build method called on a nested builder.
	SubBuilderFn string `yaml:"sub_builder_fn,omitempty"`
}

// NeedsStructDefault reports whether the initializer reads the record-wide
// default value.
func (s InitializerSpec) NeedsStructDefault() bool {
	return s.Fallback == FallbackStructDefault
}

// CanFail reports whether the initializer may fail the build.
func (s InitializerSpec) CanFail() bool {
	return s.Fallback == FallbackFail || s.Kind == InitSubBuilder
}

// BuildMethodSpec describes the finalizing build method.
type BuildMethodSpec struct {
	Name     string   `yaml:"name"`
	Receiver Receiver `yaml:"receiver"`
	// Validate is called with the builder value before any field is set.
	Validate string `yaml:"validate,omitempty"`
	// PostBuild is called with a pointer to the new record.
	PostBuild string `yaml:"post_build,omitempty"`
	// StructDefault is the record-wide default expression; empty means the
	// zero record.
	StructDefault      string            `yaml:"struct_default,omitempty"`
	NeedsStructDefault bool              `yaml:"needs_struct_default,omitempty"`
	Initializers       []InitializerSpec `yaml:"initializers"`
	// FromUninitialized converts buildrt.UninitializedFieldError to the build error.
	FromUninitialized string `yaml:"from_uninitialized,omitempty"`
	// FromValidation converts hook and sub-builder errors to the build error.
	FromValidation string `yaml:"from_validation,omitempty"`
}

// ErrorVariant is one case of a generated error type.
type ErrorVariant struct {
	// Const is the Go constant of the variant kind.
	Const string `yaml:"const"`
	// Name is the variant name.
	Name string `yaml:"name"`
}

// Error variant names.
const (
	VariantUninitializedField = "UninitializedField"
	VariantValidationError    = "ValidationError"
)

// ErrorTypeSpec describes a generated error type.
type ErrorTypeSpec struct {
	Name string `yaml:"name"`
	// KindType is the enum type of the variants.
	KindType          string         `yaml:"kind_type"`
	Variants          []ErrorVariant `yaml:"variants"`
	FromUninitialized string         `yaml:"from_uninitialized"`
	FromValidation    string         `yaml:"from_validation"`
}

// Uninitialized returns the constant of the uninitialized field variant.
func (e *ErrorTypeSpec) Uninitialized() string {
	return e.variant(VariantUninitializedField)
}

// Validation returns the constant of the validation variant.
func (e *ErrorTypeSpec) Validation() string {
	return e.variant(VariantValidationError)
}

func (e *ErrorTypeSpec) variant(name string) string {
	for _, v := range e.Variants {
		if v.Name == name {
			return v.Const
		}
	}

	return ""
}

// BuilderSpec is the full description of one builder type.
type BuilderSpec struct {
	// Record is the record type name.
	Record string `yaml:"record"`
	// Name is the builder type name.
	Name string `yaml:"name"`
	// TypeParams is the type parameter list of a generic builder, e.g.
	// "[K comparable, V any]".
	TypeParams string `yaml:"type_params,omitempty"`
	// TypeArgs instantiates the builder and record in method receivers, e.g. "[K, V]".
	TypeArgs string             `yaml:"type_args,omitempty"`
	Pattern  directive.Pattern  `yaml:"pattern"`
	Receiver Receiver           `yaml:"receiver"`
	Fields   []StorageFieldSpec `yaml:"fields"`
	Setters  []SetterSpec       `yaml:"setters"`
	// Constructor is the name of the constructor function, empty when the
	// user provides one.
	Constructor string           `yaml:"constructor,omitempty"`
	Build       *BuildMethodSpec `yaml:"build,omitempty"`
	Error       *ErrorTypeSpec   `yaml:"error,omitempty"`
	// ErrorType is the error type documented on the build method.
	ErrorType string `yaml:"error_type"`
	Clone     bool   `yaml:"clone,omitempty"`
	Stringer  bool   `yaml:"stringer,omitempty"`
}

// Self returns the instantiated builder type, e.g. "PairBuilder[K, V]".
func (b *BuilderSpec) Self() string {
	return b.Name + b.TypeArgs
}

// RecordType returns the instantiated record type.
func (b *BuilderSpec) RecordType() string {
	return b.Record + b.TypeArgs
}

// Methods returns the names of all methods declared on the builder.
func (b *BuilderSpec) Methods() []string {
	var out []string

	for _, s := range b.Setters {
		out = append(out, s.Name)
	}

	if b.Build != nil {
		out = append(out, b.Build.Name)
	}

	if b.Clone {
		out = append(out, "Clone")
	}

	if b.Stringer {
		out = append(out, "String")
	}

	return out
}
