package viewmodels

type AlbumList struct {
	BaseViewModel
	Albums []Album
}

type Album struct {
	UUID          string
	Title         string
	PublishedDate string
	Cover         *Photo
}

type ViewAlbum struct {
	BaseViewModel
	AlbumUUID string
	Album     Album
	Photos    []Photo
}
