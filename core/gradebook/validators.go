package gradebook

import "github.com/frankspastic/psia-gradebook/core"

// Validation errors are returned as validator.ValidationErrors; the API
// layer translates them to field->message maps.

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

func (uc *UpdateClass) Validate() error {
	if uc.Name != nil {
		name := core.CleanString(*uc.Name)
		uc.Name = &name
	}
	return core.Validate.Struct(uc)
}

func (ns *NewStudent) Validate() error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.GoogleDriveURL = core.CleanString(ns.GoogleDriveURL)
	return core.Validate.Struct(ns)
}

func (us *UpdateStudent) Validate() error {
	return core.Validate.Struct(us)
}

func (nc *NewEmailContact) Validate() error {
	nc.Email = core.CleanString(nc.Email, true /* lower */)
	nc.ContactName = core.CleanString(nc.ContactName)
	return core.Validate.Struct(nc)
}

func (uc *UpdateEmailContact) Validate() error {
	return core.Validate.Struct(uc)
}

func (na *NewAssignment) Validate() error {
	na.Label = core.CleanString(na.Label)
	na.Date = core.CleanString(na.Date)
	return core.Validate.Struct(na)
}

func (ua *UpdateAssignment) Validate() error {
	return core.Validate.Struct(ua)
}

func (ng *NewGrade) Validate() error {
	ng.Grade = core.CleanString(ng.Grade)
	return core.Validate.Struct(ng)
}

func (ug *UpdateGrade) Validate() error {
	if ug.Grade != nil {
		grade := core.CleanString(*ug.Grade)
		ug.Grade = &grade
	}
	return core.Validate.Struct(ug)
}
