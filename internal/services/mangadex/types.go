package mangadex

// Wire types for the MangaDex REST API. Only the fields the mappers read are
// declared; everything else in the payload is ignored.

type mangaAttributes struct {
	Title       map[string]string `json:"title"`
	Description map[string]string `json:"description"`
	Year        *int              `json:"year"`
	Status      string            `json:"status"`
	Tags        []tagEntry        `json:"tags"`
}

type tagEntry struct {
	Attributes struct {
		Name  map[string]string `json:"name"`
		Group string            `json:"group"`
	} `json:"attributes"`
}

// relationship carries cover art, author and artist links. The attribute set
// differs per type; the union is declared here.
type relationship struct {
	Type       string `json:"type"`
	Attributes struct {
		Name     string `json:"name"`
		FileName string `json:"fileName"`
	} `json:"attributes"`
}

type manga struct {
	ID            string          `json:"id"`
	Attributes    mangaAttributes `json:"attributes"`
	Relationships []relationship  `json:"relationships"`
}

type searchResponse struct {
	Result string  `json:"result"`
	Data   []manga `json:"data"`
}

type detailResponse struct {
	Result string `json:"result"`
	Data   manga  `json:"data"`
}

// SearchResult is one row of a title search, trimmed for list rendering
type SearchResult struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	DescriptionSnippet string `json:"description_snippet"`
	Year               *int   `json:"year"`
	Status             string `json:"status"`
	CoverURL           string `json:"cover_url"`
	Authors            string `json:"authors"`
	Artists            string `json:"artists"`
}
