package stremio

type ContentType string

const ContentTypeSeries ContentType = "series"

type ResourceName string

const (
	ResourceNameCatalog ResourceName = "catalog"
	ResourceNameMeta    ResourceName = "meta"
	ResourceNameStream  ResourceName = "stream"
)

type ManifestCatalogExtra struct {
	Name       string   `json:"name"`
	IsRequired bool     `json:"isRequired,omitempty"`
	Options    []string `json:"options,omitempty"`
}

type ManifestCatalog struct {
	Type  ContentType            `json:"type"`
	Id    string                 `json:"id"`
	Name  string                 `json:"name"`
	Extra []ManifestCatalogExtra `json:"extra,omitempty"`
}

type BehaviorHints struct {
	Configurable          bool `json:"configurable,omitempty"`
	ConfigurationRequired bool `json:"configurationRequired,omitempty"`
}

type Manifest struct {
	ID            string            `json:"id"`
	Version       string            `json:"version"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Resources     []ResourceName    `json:"resources"`
	Types         []ContentType     `json:"types"`
	Catalogs      []ManifestCatalog `json:"catalogs"`
	IDPrefixes    []string          `json:"idPrefixes,omitempty"`
	Logo          string            `json:"logo,omitempty"`
	Background    string            `json:"background,omitempty"`
	BehaviorHints *BehaviorHints    `json:"behaviorHints,omitempty"`
}
