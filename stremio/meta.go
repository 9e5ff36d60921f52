package stremio

type MetaVideo struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Released  string `json:"released"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	Overview  string `json:"overview,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type MetaPreview struct {
	Id          string      `json:"id"`
	Type        ContentType `json:"type"`
	Name        string      `json:"name"`
	Poster      string      `json:"poster,omitempty"`
	PosterShape string      `json:"posterShape,omitempty"`
	Background  string      `json:"background,omitempty"`
	Logo        string      `json:"logo,omitempty"`
	Description string      `json:"description,omitempty"`
	ReleaseInfo string      `json:"releaseInfo,omitempty"`
}

type Meta struct {
	MetaPreview
	Videos []MetaVideo `json:"videos"`
}

type CatalogHandlerResponse struct {
	Metas []MetaPreview `json:"metas"`
}

type MetaHandlerResponse struct {
	Meta *Meta `json:"meta"`
}
