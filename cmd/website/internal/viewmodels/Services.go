package viewmodels

type ServicesPage struct {
	BaseViewModel
	Services []Service
}

type Service struct {
	Title       string
	Description string
	Price       string
}
