// Package form holds the state controller behind one displayed form: the
// active field list, the current values and the current errors. Every
// operation is synchronous and total; validation failures are stored as
// strings, never returned as Go errors.
//
// Typical flow:
//
//	ctrl := form.New(catalog.Default())
//	ctrl.SelectCompany("Acme Corp")
//	ctrl.SetValue("full_name", "Ada")
//	res := ctrl.Submit()
package form
