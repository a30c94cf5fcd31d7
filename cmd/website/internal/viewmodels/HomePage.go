package viewmodels

type HomePage struct {
	BaseViewModel
	Photos []Photo
}

type AboutPage struct {
	BaseViewModel
}
