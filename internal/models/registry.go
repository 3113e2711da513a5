package models

// KindInfo carries the per-kind storage metadata the generic query engine
// and the favorites/dedup lookups need. The registry is closed: dispatch
// happens over these entries, never over model name strings.
type KindInfo struct {
	Kind             Kind
	Table            string
	TagJoinTable     string
	TagJoinColumn    string
	ExternalIDColumn string // "mal_id" or "mangadex_id"
}

var registry = map[Kind]KindInfo{
	KindAnime: {
		Kind:             KindAnime,
		Table:            "animes",
		TagJoinTable:     "anime_tags",
		TagJoinColumn:    "anime_id",
		ExternalIDColumn: "mal_id",
	},
	KindWebtoon: {
		Kind:             KindWebtoon,
		Table:            "webtoons",
		TagJoinTable:     "webtoon_tags",
		TagJoinColumn:    "webtoon_id",
		ExternalIDColumn: "mangadex_id",
	},
	KindManga: {
		Kind:             KindManga,
		Table:            "mangas",
		TagJoinTable:     "manga_tags",
		TagJoinColumn:    "manga_id",
		ExternalIDColumn: "mangadex_id",
	},
	KindNovel: {
		Kind:             KindNovel,
		Table:            "novels",
		TagJoinTable:     "novel_tags",
		TagJoinColumn:    "novel_id",
		ExternalIDColumn: "mal_id",
	},
}

// InfoFor returns the registry entry for a kind
func InfoFor(kind Kind) (KindInfo, bool) {
	info, ok := registry[kind]
	return info, ok
}
