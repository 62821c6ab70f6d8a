package models

// Validate checks that the comment meets all storage requirements.
func (c *Comment) Validate() error {
	if missing := missingFromStruct(c); len(missing) > 0 {
		return MissingFields(missing...)
	}
	return nil
}

// Validate checks that the credential record is complete.
func (u *User) Validate() error {
	if missing := missingFromStruct(u); len(missing) > 0 {
		return MissingFields(missing...)
	}
	return nil
}
