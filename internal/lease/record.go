// Package lease defines the canonical lease-data record handed to the
// rendering layer, plus the validators that keep it typed.
package lease

// Field is one leaf slot in the canonical record. Past the merge stage a
// Field is either a validated value with Set=true, or the explicit unset
// sentinel (Set=false), never a raw unvalidated string.
type Field struct {
	Value  string `json:"value,omitempty"`
	Set    bool   `json:"set"`
	Source string `json:"source,omitempty"` // input | document kind | default
}

// Party holds the identity and banking fields for one side of the lease.
type Party struct {
	Name            Field `json:"name"`
	TradingAs       Field `json:"trading_as"`
	RegNo           Field `json:"reg_no"`
	VatNo           Field `json:"vat_no"`
	IDNumber        Field `json:"id_number"`
	Phone           Field `json:"phone"`
	PostalAddress   Field `json:"postal_address"`
	PhysicalAddress Field `json:"physical_address"`
	BankName        Field `json:"bank_name"`
	BankBranch      Field `json:"bank_branch"`
	BranchCode      Field `json:"branch_code"`
	AccountNo       Field `json:"account_no"`
	AccountType     Field `json:"account_type"`
	AccountHolder   Field `json:"account_holder"`
}

// Surety identifies the natural person standing surety for the tenant.
type Surety struct {
	Name     Field `json:"name"`
	IDNumber Field `json:"id_number"`
	Address  Field `json:"address"`
}

// Premises describes the leased unit.
type Premises struct {
	Unit            Field `json:"unit"`
	BuildingName    Field `json:"building_name"`
	BuildingAddress Field `json:"building_address"`
	Size            Field `json:"size"`
	Percentage      Field `json:"percentage"`
	PermittedUse    Field `json:"permitted_use"`
}

// Terms holds the lease term and option dates.
type Terms struct {
	StartDate        Field `json:"start_date"`
	EndDate          Field `json:"end_date"`
	Years            Field `json:"years"`
	Months           Field `json:"months"`
	OptionYears      Field `json:"option_years"`
	OptionMonths     Field `json:"option_months"`
	OptionExerciseBy Field `json:"option_exercise_by"`
}

// Utilities holds the per-category utility charges from the municipal
// statement plus its own identifying fields.
type Utilities struct {
	Electricity   Field `json:"electricity"`
	Water         Field `json:"water"`
	Sewerage      Field `json:"sewerage"`
	Municipal     Field `json:"municipal"`
	Refuse        Field `json:"refuse"`
	TotalDue      Field `json:"total_due"`
	StatementDate Field `json:"statement_date"`
	AccountNumber Field `json:"account_number"`
}

// Financial groups rent, deposit, fees and the utility schedule.
type Financial struct {
	Rent      Field     `json:"rent"`
	Deposit   Field     `json:"deposit"`
	LeaseFee  Field     `json:"lease_fee"`
	Utilities Utilities `json:"utilities"`
}

// Record is the merged, typed lease-data record. Every declared slot is
// always present; rendering never needs field-presence branching.
type Record struct {
	Tenant    Party     `json:"tenant"`
	Landlord  Party     `json:"landlord"`
	Surety    Surety    `json:"surety"`
	Premises  Premises  `json:"premises"`
	Lease     Terms     `json:"lease"`
	Financial Financial `json:"financial"`
}

// NewRecord returns the complete skeleton with every slot unset.
func NewRecord() *Record {
	return &Record{}
}

// Slot resolves a dotted field key to its slot in the record.
// Returns nil for unknown keys.
func (r *Record) Slot(key string) *Field {
	return r.slots()[key]
}

// Unset lists every declared field key that remains unset, in schema order.
func (r *Record) Unset() []string {
	slots := r.slots()
	var out []string
	for _, k := range Keys() {
		if f := slots[k]; f != nil && !f.Set {
			out = append(out, k)
		}
	}
	return out
}

func partySlots(prefix string, p *Party, m map[string]*Field) {
	m[prefix+".name"] = &p.Name
	m[prefix+".trading_as"] = &p.TradingAs
	m[prefix+".reg_no"] = &p.RegNo
	m[prefix+".vat_no"] = &p.VatNo
	m[prefix+".id_number"] = &p.IDNumber
	m[prefix+".phone"] = &p.Phone
	m[prefix+".postal_address"] = &p.PostalAddress
	m[prefix+".physical_address"] = &p.PhysicalAddress
	m[prefix+".bank_name"] = &p.BankName
	m[prefix+".bank_branch"] = &p.BankBranch
	m[prefix+".branch_code"] = &p.BranchCode
	m[prefix+".account_no"] = &p.AccountNo
	m[prefix+".account_type"] = &p.AccountType
	m[prefix+".account_holder"] = &p.AccountHolder
}

func (r *Record) slots() map[string]*Field {
	m := make(map[string]*Field, 64)
	partySlots("tenant", &r.Tenant, m)
	partySlots("landlord", &r.Landlord, m)

	m["surety.name"] = &r.Surety.Name
	m["surety.id_number"] = &r.Surety.IDNumber
	m["surety.address"] = &r.Surety.Address

	m["premises.unit"] = &r.Premises.Unit
	m["premises.building_name"] = &r.Premises.BuildingName
	m["premises.building_address"] = &r.Premises.BuildingAddress
	m["premises.size"] = &r.Premises.Size
	m["premises.percentage"] = &r.Premises.Percentage
	m["premises.permitted_use"] = &r.Premises.PermittedUse

	m["lease.start_date"] = &r.Lease.StartDate
	m["lease.end_date"] = &r.Lease.EndDate
	m["lease.years"] = &r.Lease.Years
	m["lease.months"] = &r.Lease.Months
	m["lease.option_years"] = &r.Lease.OptionYears
	m["lease.option_months"] = &r.Lease.OptionMonths
	m["lease.option_exercise_by"] = &r.Lease.OptionExerciseBy

	m["financial.rent"] = &r.Financial.Rent
	m["financial.deposit"] = &r.Financial.Deposit
	m["financial.lease_fee"] = &r.Financial.LeaseFee

	u := &r.Financial.Utilities
	m["financial.utilities.electricity"] = &u.Electricity
	m["financial.utilities.water"] = &u.Water
	m["financial.utilities.sewerage"] = &u.Sewerage
	m["financial.utilities.municipal"] = &u.Municipal
	m["financial.utilities.refuse"] = &u.Refuse
	m["financial.utilities.total_due"] = &u.TotalDue
	m["financial.utilities.statement_date"] = &u.StatementDate
	m["financial.utilities.account_number"] = &u.AccountNumber

	return m
}
