package validator

// Validator bundles tag-level and business rule validation behind one
// dependency handed to the service layer.
type Validator struct {
	business *BusinessValidator
}

func New() *Validator {
	return &Validator{
		business: NewBusinessValidator(),
	}
}

// Validate runs struct tag validation.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	return v.business.Validate(s)
}

// GetBusinessValidator exposes domain rule checks (attendance batches,
// score upserts, class year ranges).
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}
