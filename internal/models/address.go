package models

// Address is a postal address owned by exactly one customer slot (permanent
// or communication). It has no lifecycle of its own: rows are created,
// updated and deleted inside the owning customer's transaction.
type Address struct {
	ID       int64  `json:"id" db:"id"`
	HouseNo  string `json:"houseNo,omitempty" db:"house_no"`
	Street   string `json:"street" db:"street"`
	Landmark string `json:"landmark,omitempty" db:"landmark"`
	City     string `json:"city" db:"city"`
	State    string `json:"state" db:"state"`
	Pin      string `json:"pin" db:"pin_code"`
}

// AddressPayload is the address body accepted on customer creation.
type AddressPayload struct {
	HouseNo  string `json:"houseNo" validate:"max=250"`
	Street   string `json:"street" validate:"required,max=250"`
	Landmark string `json:"landmark" validate:"max=250"`
	City     string `json:"city" validate:"required,max=250"`
	State    string `json:"state" validate:"required,max=250"`
	Pin      string `json:"pin" validate:"required,len=6,numeric"`
}

// ToAddress builds a fresh Address row from the payload.
func (p *AddressPayload) ToAddress() *Address {
	if p == nil {
		return nil
	}
	return &Address{
		HouseNo:  p.HouseNo,
		Street:   p.Street,
		Landmark: p.Landmark,
		City:     p.City,
		State:    p.State,
		Pin:      p.Pin,
	}
}

// AddressPatch carries partial address updates. Nil fields mean "leave the
// stored value unchanged".
type AddressPatch struct {
	HouseNo  *string `json:"houseNo,omitempty" validate:"omitempty,max=250"`
	Street   *string `json:"street,omitempty" validate:"omitempty,max=250"`
	Landmark *string `json:"landmark,omitempty" validate:"omitempty,max=250"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=250"`
	State    *string `json:"state,omitempty" validate:"omitempty,max=250"`
	Pin      *string `json:"pin,omitempty" validate:"omitempty,len=6,numeric"`
}

// ApplyTo merges the non-nil patch fields onto addr in place.
func (p *AddressPatch) ApplyTo(addr *Address) {
	if p.HouseNo != nil {
		addr.HouseNo = *p.HouseNo
	}
	if p.Street != nil {
		addr.Street = *p.Street
	}
	if p.Landmark != nil {
		addr.Landmark = *p.Landmark
	}
	if p.City != nil {
		addr.City = *p.City
	}
	if p.State != nil {
		addr.State = *p.State
	}
	if p.Pin != nil {
		addr.Pin = *p.Pin
	}
}

// ToAddress builds a new Address row from whatever patch fields are set,
// used when the customer slot is still empty.
func (p *AddressPatch) ToAddress() *Address {
	addr := &Address{}
	p.ApplyTo(addr)
	return addr
}
