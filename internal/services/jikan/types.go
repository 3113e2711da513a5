package jikan

// Wire types for the Jikan (MyAnimeList) v4 API. The anime and manga
// payloads share enough shape that one media type covers both.

type namedRef struct {
	Name string `json:"name"`
}

type images struct {
	JPG struct {
		LargeImageURL string `json:"large_image_url"`
	} `json:"jpg"`
}

type media struct {
	MALID        int64    `json:"mal_id"`
	Title        string   `json:"title"`
	TitleEnglish string   `json:"title_english"`
	Images       images   `json:"images"`
	Type         string   `json:"type"`
	Episodes     *int     `json:"episodes"`
	Chapters     *int     `json:"chapters"`
	Volumes      *int     `json:"volumes"`
	Score        *float64 `json:"score"`
	Status       string   `json:"status"`
	Synopsis     string   `json:"synopsis"`

	Authors []namedRef `json:"authors"`
	Studios []namedRef `json:"studios"`
}

type searchResponse struct {
	Data []media `json:"data"`
}

type detailResponse struct {
	Data *media `json:"data"`
}

// AnimeResult is one row of an anime title search
type AnimeResult struct {
	MALID           int64    `json:"mal_id"`
	Title           string   `json:"title"`
	ImageURL        string   `json:"image_url"`
	Type            string   `json:"type"`
	Episodes        *int     `json:"episodes"`
	Score           *float64 `json:"score"`
	Status          string   `json:"status"`
	SynopsisSnippet string   `json:"synopsis_snippet"`
}

// NovelResult is one row of a light novel title search
type NovelResult struct {
	MALID           int64    `json:"mal_id"`
	Title           string   `json:"title"`
	ImageURL        string   `json:"image_url"`
	Type            string   `json:"type"`
	Chapters        *int     `json:"chapters"`
	Volumes         *int     `json:"volumes"`
	Score           *float64 `json:"score"`
	Status          string   `json:"status"`
	Author          string   `json:"author"`
	SynopsisSnippet string   `json:"synopsis_snippet"`
}
