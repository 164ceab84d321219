package main

import (
	"hoteldash/internal/schema"
)

var (
	paymentMethods = []string{"cash", "check", "credit card", "debit card", "pear pay"}
	positions      = []string{"Administrator", "Supervisor", "Regular"}
	roomNames      = []string{
		"Standard", "Standard Queen", "Standard King", "Double Queen",
		"Double King", "Triple King", "Executive Family", "Presidential",
	}
	roomTiers = []string{"Basic", "Premium", "Deluxe", "Suite"}
)

// setupSchemaRegistry declares every entity managed through the dashboard.
// Path prefixes and lookup segments follow the data operations backend;
// dependents are listed in the order delete checks must probe them.
func setupSchemaRegistry() *schema.Registry {
	reg := schema.NewRegistry()

	reg.Register(schema.EntityDef{
		Name:       "login",
		Label:      "login",
		PathPrefix: "/dataops/login",
		IDField:    "lid",
		Fields: []schema.FieldDef{
			{Name: "eid", Label: "Employee ID", Type: schema.TypeReference, ReferenceTo: "employee", Required: true},
			{Name: "username", Label: "Username", Type: schema.TypeText, Required: true},
			{Name: "password", Label: "Password", Type: schema.TypeText, Required: true},
		},
		Uniques: []schema.UniqueRule{
			{Field: "eid", Lookup: "byemployeeid", Kind: schema.LookupPath, Message: "There is already an account for this Employee ID"},
			{Field: "username", Lookup: "byusername", Kind: schema.LookupQuery, Message: "This username is already taken"},
		},
	})

	reg.Register(schema.EntityDef{
		Name:       "employee",
		Label:      "employee",
		PathPrefix: "/dataops/employee",
		IDField:    "eid",
		Fields: []schema.FieldDef{
			{Name: "hid", Label: "Hotel ID", Type: schema.TypeReference, ReferenceTo: "hotel", Required: true},
			{Name: "fname", Label: "First Name", Type: schema.TypeText, Required: true},
			{Name: "lname", Label: "Last Name", Type: schema.TypeText, Required: true},
			{Name: "age", Label: "Age", Type: schema.TypeInteger, Required: true},
			{Name: "position", Label: "Position", Type: schema.TypeEnum, Required: true, Options: positions},
			{Name: "salary", Label: "Salary", Type: schema.TypeReal, Required: true},
		},
		Dependents: []schema.DependentDef{
			{Entity: "login", Lookup: "byemployeeid"},
		},
	})

	reg.Register(schema.EntityDef{
		Name:       "chain",
		Label:      "chain",
		PathPrefix: "/dataops/chains",
		IDField:    "chid",
		Fields: []schema.FieldDef{
			{Name: "cname", Label: "Chain Name", Type: schema.TypeText, Required: true},
			{Name: "springmkup", Label: "Spring Markup", Type: schema.TypeReal, Required: true},
			{Name: "summermkup", Label: "Summer Markup", Type: schema.TypeReal, Required: true},
			{Name: "wintermkup", Label: "Winter Markup", Type: schema.TypeReal, Required: true},
			{Name: "fallmkup", Label: "Fall Markup", Type: schema.TypeReal, Required: true},
		},
		Dependents: []schema.DependentDef{
			{Entity: "hotel", Lookup: "bychid"},
		},
	})

	reg.Register(schema.EntityDef{
		Name:       "hotel",
		Label:      "hotel",
		PathPrefix: "/dataops/hotel",
		IDField:    "hid",
		Fields: []schema.FieldDef{
			{Name: "chid", Label: "Chain ID", Type: schema.TypeReference, ReferenceTo: "chain", Required: true},
			{Name: "hname", Label: "Hotel Name", Type: schema.TypeText, Required: true},
			{Name: "hcity", Label: "Hotel City", Type: schema.TypeText, Required: true},
		},
		Dependents: []schema.DependentDef{
			{Entity: "employee", Lookup: "byhid"},
			{Entity: "room", Lookup: "byhid"},
		},
	})

	reg.Register(schema.EntityDef{
		Name:       "roomdescription",
		Label:      "room description",
		PathPrefix: "/dataops/roomdescription",
		IDField:    "rdid",
		Fields: []schema.FieldDef{
			{Name: "rname", Label: "Room Name", Type: schema.TypeEnum, Required: true, Options: roomNames},
			{Name: "rtype", Label: "Room Type", Type: schema.TypeEnum, Required: true, Options: roomTiers},
			{Name: "capacity", Label: "Capacity", Type: schema.TypeInteger, Required: true},
			{Name: "ishandicap", Label: "Handicap Accessible", Type: schema.TypeBoolean, Required: true},
		},
		Dependents: []schema.DependentDef{
			{Entity: "room", Lookup: "byrdid"},
		},
	})

	reg.Register(schema.EntityDef{
		Name:       "client",
		Label:      "client",
		PathPrefix: "/dataops/client",
		IDField:    "clid",
		Fields: []schema.FieldDef{
			{Name: "fname", Label: "First Name", Type: schema.TypeText, Required: true},
			{Name: "lname", Label: "Last Name", Type: schema.TypeText, Required: true},
			{Name: "age", Label: "Age", Type: schema.TypeInteger, Required: true},
			{Name: "memberyear", Label: "Member Year", Type: schema.TypeInteger, Required: true},
		},
		Dependents: []schema.DependentDef{
			{Entity: "reserve", Lookup: "byclid"},
		},
	})

	reg.Register(schema.EntityDef{
		Name:       "reserve",
		Label:      "reservation",
		PathPrefix: "/dataops/reserve",
		IDField:    "reid",
		Fields: []schema.FieldDef{
			{Name: "ruid", Label: "Room Unavailable ID", Type: schema.TypeReference, ReferenceTo: "roomunavailable", Required: true},
			{Name: "clid", Label: "Client ID", Type: schema.TypeReference, ReferenceTo: "client", Required: true},
			{Name: "payment", Label: "Payment Method", Type: schema.TypeEnum, Required: true, Options: paymentMethods},
			{Name: "guests", Label: "Guests", Type: schema.TypeInteger, Required: true},
			{Name: "total_cost", Label: "Total Cost", Type: schema.TypeReal, ServerDerived: true},
		},
	})

	reg.Register(schema.EntityDef{
		Name:       "room",
		Label:      "room",
		PathPrefix: "/dataops/room",
		IDField:    "rid",
		Fields: []schema.FieldDef{
			{Name: "hid", Label: "Hotel ID", Type: schema.TypeReference, ReferenceTo: "hotel", Required: true},
			{Name: "rdid", Label: "Room Description ID", Type: schema.TypeReference, ReferenceTo: "roomdescription", Required: true},
			{Name: "rprice", Label: "Room Price", Type: schema.TypeReal, Required: true},
		},
		Dependents: []schema.DependentDef{
			{Entity: "roomunavailable", Lookup: "byrid"},
		},
	})

	reg.Register(schema.EntityDef{
		Name:       "roomunavailable",
		Label:      "unavailable room",
		PathPrefix: "/dataops/roomunavailable",
		IDField:    "ruid",
		Fields: []schema.FieldDef{
			{Name: "rid", Label: "Room ID", Type: schema.TypeReference, ReferenceTo: "room", Required: true},
			{Name: "startdate", Label: "Start Date", Type: schema.TypeDate, Required: true},
			{Name: "enddate", Label: "End Date", Type: schema.TypeDate, Required: true},
		},
		Dependents: []schema.DependentDef{
			{Entity: "reserve", Lookup: "byruid"},
		},
	})

	return reg
}
