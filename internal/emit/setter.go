package emit

import (
	"builder-generator/internal/common"
	"builder-generator/internal/directive"
	"builder-generator/internal/policy"
)

// Setter argument types of the runtime package.
const (
	intoType    = "buildrt.Into"
	tryIntoType = "buildrt.TryInto"
)

// EmitSetters describes the setters of one field: nothing when the setter or
// its storage is disabled, otherwise the assigning setter, the fallible Try setter when
// requested and the accumulating setter of an each field.
func EmitSetters(fp *policy.FieldPolicy) []SetterSpec {
	if !fp.SetterEnabled || !fp.FieldEnabled {
		return nil
	}

	name := SetterName(fp)
	recv := receiverOf(fp.Pattern)

	base := SetterSpec{
		Kind:       SetterAssign,
		Name:       name,
		Field:      fp.Name,
		Storage:    StorageName(fp),
		StoreAs:    storageKind(fp),
		Receiver:   recv,
		CloneFirst: fp.Pattern == directive.PatternImmutable,
		Param:      fp.StorageType(),
	}

	if fp.StripOption && base.StoreAs == StorageOptional {
		base.StripOption = true
		base.Param = fp.Field.Elem
	}

	out := make([]SetterSpec, 0, 3)

	assign := base
	if fp.Into {
		assign.Convert = ConvertInto
		assign.Param = generic(intoType, base.Param)
	}

	out = append(out, assign)

	if fp.TrySetter {
		try := base
		try.Kind = SetterTry
		try.Name = common.Ident(common.JoinCamel("try", fp.SetterName), exported(fp.SetterVis, true))
		try.Convert = ConvertTryInto
		try.Param = generic(tryIntoType, base.Param)
		out = append(out, try)
	}

	if fp.Each != nil {
		out = append(out, eachSetter(fp, base))
	}

	return out
}

func eachSetter(fp *policy.FieldPolicy, base SetterSpec) SetterSpec {
	each := base
	each.Kind = SetterEach
	each.Name = common.Ident(fp.Each.Name, exported(fp.SetterVis, true))
	each.StripOption = false
	each.Param = fp.Each.Elem
	each.Each = &EachSpec{
		Map:        fp.Each.IsMap(),
		Collection: fp.Field.Type,
		Key:        fp.Each.Key,
	}

	if fp.Each.Into {
		each.Convert = ConvertInto
		each.Param = generic(intoType, fp.Each.Elem)
	}

	return each
}

func storageKind(fp *policy.FieldPolicy) StorageKind {
	switch {
	case fp.SubBuilder != nil:
		return StorageSubBuilder
	case fp.IsDirect():
		return StorageDirect
	default:
		return StorageOptional
	}
}

func generic(typ, arg string) string {
	return typ + "[" + arg + "]"
}
