package header

const (
	RouteHome     = "/"
	RouteProfile  = "/landing"
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteLogout   = "/logout"

	// Partial updates of the header itself.
	RouteMenu   = "/header/menu"
	RouteFollow = "/header/follow"
)

const DefaultBrand = "Home"

type ItemKind string

const (
	// ItemLink is a plain navigation link.
	ItemLink ItemKind = "link"
	// ItemLogout is the logout control.
	ItemLogout ItemKind = "logout"
)

type Item struct {
	Kind   ItemKind
	Label  string
	Path   string
	InMenu bool
}

// Region is one of the two render sites of the navigation items.
type Region struct {
	Primary   Item
	Secondary Item
}

func (r Region) Items() []Item {
	return []Item{r.Primary, r.Secondary}
}

type View struct {
	Brand         Item
	Authenticated bool
	MenuOpen      bool
	Desktop       Region
	Menu          Region
}

// Render derives the header view. Both regions follow the same branch
// table, the overlay menu items being flagged as such.
func Render(brand string, authenticated bool, menuOpen bool) View {
	return View{
		Brand:         Item{Kind: ItemLink, Label: brand, Path: RouteHome},
		Authenticated: authenticated,
		MenuOpen:      menuOpen,
		Desktop:       region(authenticated, false),
		Menu:          region(authenticated, true),
	}
}

func region(authenticated bool, inMenu bool) Region {
	if authenticated {
		return Region{
			Primary:   Item{Kind: ItemLogout, Label: "Log Out", Path: RouteLogout, InMenu: inMenu},
			Secondary: Item{Kind: ItemLink, Label: "Profile", Path: RouteProfile, InMenu: inMenu},
		}
	}

	return Region{
		Primary:   Item{Kind: ItemLink, Label: "Login", Path: RouteLogin, InMenu: inMenu},
		Secondary: Item{Kind: ItemLink, Label: "Register", Path: RouteRegister, InMenu: inMenu},
	}
}
