package directive

// RecordOptions are the typed record-scope directives.
type RecordOptions struct {
	// Name overrides the builder type name.
	Name *string
	// Pattern for all setters and the build method.
	Pattern *Pattern
	// Vis is the builder type visibility.
	Vis VisibilityFlags
	// Setter holds defaults applied to every field setter.
	Setter RecordSetterOptions
	// Default is the struct-wide default value used for unset fields.
	Default *DefaultExpr
	// BuildFn configures the build method.
	BuildFn BuildFnOptions
	// Derive lists extra builder capabilities ("Clone", "Stringer").
	Derive []string
	// CustomConstructor suppresses the generated New<Builder> constructor.
	CustomConstructor bool
	// SuppressDeriveClone keeps a Clone method from being generated even
	// when a pattern needs it.
	SuppressDeriveClone bool
	// TrySetter enables fallible setters for every field.
	TrySetter bool
	// Field is the default visibility of builder storage fields.
	Field StorageOptions
}

// RecordSetterOptions are setter defaults at record scope.
type RecordSetterOptions struct {
	Prefix      *string
	Into        *bool
	StripOption *bool
	Skip        *bool
}

// Enabled reports the explicit setter enablement at record scope, if any.
func (s RecordSetterOptions) Enabled() *bool {
	if s.Skip == nil {
		return nil
	}

	return boolPtr(!*s.Skip)
}

// BuildFnOptions configure the build method.
type BuildFnOptions struct {
	Skip      bool
	Name      *string
	Validate  *string
	PostBuild *string
	Vis       VisibilityFlags
	Error     *ErrorOptions
}

// ErrorOptions name an existing error type returned by the build method
// and the functions converting builder failures into it.
type ErrorOptions struct {
	// Type is the error type expression, e.g. "*AppError".
	Type string
	// Uninitialized converts a buildrt.UninitializedFieldError.
	Uninitialized *string
	// Validation converts a validation or post-build hook error.
	Validation *string
}

// StorageOptions are the "field(...)" directives controlling the backing
// storage of a field in the builder. Type and Build are field scope only.
type StorageOptions struct {
	Vis   VisibilityFlags
	Type  *string
	Build *string
}

// FieldOptions are the typed field-scope directives.
type FieldOptions struct {
	Pattern    *Pattern
	Vis        VisibilityFlags
	Setter     FieldSetterOptions
	Default    *DefaultExpr
	TrySetter  bool
	Field      StorageOptions
	SubBuilder *SubBuilderOptions
}

// FieldSetterOptions are the setter directives of one field.
type FieldSetterOptions struct {
	Prefix      *string
	Name        *string
	Into        *bool
	StripOption *bool
	Skip        *bool
	Custom      *bool
	Each        *EachOptions
}

// SetterEnabled reports whether the field explicitly enables or disables its
// setter. The rules are those of FieldEnabled, except that "custom" alone
// decides when present.
func (s FieldSetterOptions) SetterEnabled() *bool {
	if s.Custom != nil {
		return boolPtr(!*s.Custom)
	}

	return s.FieldEnabled()
}

// FieldEnabled reports whether the field explicitly enables or disables its
// builder storage. Any setter property forces the field on.
func (s FieldSetterOptions) FieldEnabled() *bool {
	if s.Skip != nil {
		return boolPtr(!*s.Skip)
	}

	if s.Prefix != nil || s.Name != nil || s.Into != nil || s.StripOption != nil || s.Each != nil {
		return boolPtr(true)
	}

	return nil
}

// EachOptions configure the accumulating setter of a collection field.
type EachOptions struct {
	Name string
	Into bool
}

// SubBuilderOptions mark a field as backed by the builder of its own type.
type SubBuilderOptions struct {
	// FnName is the build method of the nested builder.
	FnName *string
}

func boolPtr(b bool) *bool {
	return &b
}
