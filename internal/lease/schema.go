package lease

// FieldType selects the validator applied when a value lands in a slot.
type FieldType int

const (
	TypeText FieldType = iota
	TypeAmount
	TypeDate
	TypeInteger
	TypeIdentifier // stored as-is post-cleaning, no checksum validation
)

type fieldDef struct {
	Key  string
	Type FieldType
}

// schema is the declared field set, in output order. Reordering or adding
// a field here is the reviewable change, not scattered code.
var schema = []fieldDef{
	{"tenant.name", TypeText},
	{"tenant.trading_as", TypeText},
	{"tenant.reg_no", TypeIdentifier},
	{"tenant.vat_no", TypeIdentifier},
	{"tenant.id_number", TypeIdentifier},
	{"tenant.phone", TypeIdentifier},
	{"tenant.postal_address", TypeText},
	{"tenant.physical_address", TypeText},
	{"tenant.bank_name", TypeText},
	{"tenant.bank_branch", TypeText},
	{"tenant.branch_code", TypeIdentifier},
	{"tenant.account_no", TypeIdentifier},
	{"tenant.account_type", TypeText},
	{"tenant.account_holder", TypeText},

	{"landlord.name", TypeText},
	{"landlord.trading_as", TypeText},
	{"landlord.reg_no", TypeIdentifier},
	{"landlord.vat_no", TypeIdentifier},
	{"landlord.id_number", TypeIdentifier},
	{"landlord.phone", TypeIdentifier},
	{"landlord.postal_address", TypeText},
	{"landlord.physical_address", TypeText},
	{"landlord.bank_name", TypeText},
	{"landlord.bank_branch", TypeText},
	{"landlord.branch_code", TypeIdentifier},
	{"landlord.account_no", TypeIdentifier},
	{"landlord.account_type", TypeText},
	{"landlord.account_holder", TypeText},

	{"surety.name", TypeText},
	{"surety.id_number", TypeIdentifier},
	{"surety.address", TypeText},

	{"premises.unit", TypeText},
	{"premises.building_name", TypeText},
	{"premises.building_address", TypeText},
	{"premises.size", TypeText},
	{"premises.percentage", TypeText},
	{"premises.permitted_use", TypeText},

	{"lease.start_date", TypeDate},
	{"lease.end_date", TypeDate},
	{"lease.years", TypeInteger},
	{"lease.months", TypeInteger},
	{"lease.option_years", TypeInteger},
	{"lease.option_months", TypeInteger},
	{"lease.option_exercise_by", TypeDate},

	{"financial.rent", TypeAmount},
	{"financial.deposit", TypeAmount},
	{"financial.lease_fee", TypeAmount},
	{"financial.utilities.electricity", TypeAmount},
	{"financial.utilities.water", TypeAmount},
	{"financial.utilities.sewerage", TypeAmount},
	{"financial.utilities.municipal", TypeAmount},
	{"financial.utilities.refuse", TypeAmount},
	{"financial.utilities.total_due", TypeAmount},
	{"financial.utilities.statement_date", TypeDate},
	{"financial.utilities.account_number", TypeIdentifier},
}

var typeByKey = func() map[string]FieldType {
	m := make(map[string]FieldType, len(schema))
	for _, d := range schema {
		m[d.Key] = d.Type
	}
	return m
}()

var keyOrder = func() []string {
	ks := make([]string, len(schema))
	for i, d := range schema {
		ks[i] = d.Key
	}
	return ks
}()

// Keys returns every declared field key in schema order.
func Keys() []string {
	return keyOrder
}

// TypeOf returns the declared type for a field key.
// Unknown keys are treated as text.
func TypeOf(key string) FieldType {
	if t, ok := typeByKey[key]; ok {
		return t
	}
	return TypeText
}

// Known reports whether key is a declared field.
func Known(key string) bool {
	_, ok := typeByKey[key]
	return ok
}
