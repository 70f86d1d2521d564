package models

// Customer is the aggregate root: scalar trip details, two exclusively owned
// addresses, and a shared-by-reference set of locations persisted through the
// customer_location join table.
type Customer struct {
	ID                   int64      `json:"id" db:"id"`
	FirstName            string     `json:"firstName" db:"first_name"`
	LastName             string     `json:"lastName" db:"last_name"`
	StartLocation        string     `json:"startLocation" db:"start_location"`
	Destination          string     `json:"destination" db:"destination"`
	PackageName          string     `json:"packageName" db:"package_name"`
	Cost                 float64    `json:"cost" db:"cost"`
	Phone                string     `json:"phone" db:"phone"`
	Notes                string     `json:"notes,omitempty" db:"notes"`
	PermanentAddress     *Address   `json:"permanentAddress,omitempty"`
	CommunicationAddress *Address   `json:"communicationAddress,omitempty"`
	Locations            []Location `json:"locations"`
}

// CustomerDetails carries the scalar customer fields for creation. Names and
// the free-text place names are letters only; the phone is exactly 10 digits.
type CustomerDetails struct {
	FirstName     string  `json:"firstName" validate:"required,alpha"`
	LastName      string  `json:"lastName" validate:"required,alpha"`
	StartLocation string  `json:"startLocation" validate:"required,alpha"`
	Destination   string  `json:"destination" validate:"required,alpha"`
	PackageName   string  `json:"packageName" validate:"required"`
	Cost          float64 `json:"cost" validate:"gte=0"`
	Phone         string  `json:"phone" validate:"required,len=10,numeric"`
	Notes         string  `json:"notes" validate:"max=250"`
}

// CreateCustomerRequest is the body for customer creation. The permanent
// address is mandatory; the communication address may be omitted entirely.
type CreateCustomerRequest struct {
	CustomerDetails      *CustomerDetails  `json:"customerDetails" validate:"required"`
	PermanentAddress     *AddressPayload   `json:"permanentAddress" validate:"required"`
	CommunicationAddress *AddressPayload   `json:"communicationAddress" validate:"omitempty"`
	Locations            []LocationRequest `json:"locations"`
}

// CustomerPatch carries partial scalar updates. Nil fields are left untouched.
type CustomerPatch struct {
	FirstName     *string  `json:"firstName,omitempty" validate:"omitempty,alpha"`
	LastName      *string  `json:"lastName,omitempty" validate:"omitempty,alpha"`
	StartLocation *string  `json:"startLocation,omitempty" validate:"omitempty,alpha"`
	Destination   *string  `json:"destination,omitempty" validate:"omitempty,alpha"`
	PackageName   *string  `json:"packageName,omitempty"`
	Cost          *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Phone         *string  `json:"phone,omitempty" validate:"omitempty,len=10,numeric"`
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=250"`
}

// ApplyTo merges the non-nil patch fields onto c in place.
func (p *CustomerPatch) ApplyTo(c *Customer) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.StartLocation != nil {
		c.StartLocation = *p.StartLocation
	}
	if p.Destination != nil {
		c.Destination = *p.Destination
	}
	if p.PackageName != nil {
		c.PackageName = *p.PackageName
	}
	if p.Cost != nil {
		c.Cost = *p.Cost
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}

// UpdateCustomerRequest is the body for partial customer updates. A nil
// locations slice means "leave the set alone"; an empty one clears it.
type UpdateCustomerRequest struct {
	CustomerDetails      *CustomerPatch    `json:"customerDetails" validate:"omitempty"`
	PermanentAddress     *AddressPatch     `json:"permanentAddress" validate:"omitempty"`
	CommunicationAddress *AddressPatch     `json:"communicationAddress" validate:"omitempty"`
	Locations            []LocationRequest `json:"locations"`
}

// IsEmpty reports whether the update payload carries nothing at all, the
// degenerate no-op case rejected with "Enter an input to update".
func (r *UpdateCustomerRequest) IsEmpty() bool {
	return r.CustomerDetails == nil &&
		r.PermanentAddress == nil &&
		r.CommunicationAddress == nil &&
		r.Locations == nil
}
