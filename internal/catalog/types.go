package catalog

// Wire types, reduced to the fields consumed.

type gamesResponse struct {
	Code int `json:"code"`
	Data struct {
		Count int        `json:"count"`
		Games []wireGame `json:"games"`
	} `json:"data"`
	Include struct {
		BoxArt struct {
			BaseURL wireBaseURL            `json:"base_url"`
			Data    map[string][]wireImage `json:"data"`
		} `json:"boxart"`
	} `json:"include"`
	Pages struct {
		Next string `json:"next"`
	} `json:"pages"`
}

type wireGame struct {
	ID          int64    `json:"id"`
	GameTitle   string   `json:"game_title"`
	Platform    int64    `json:"platform"`
	Overview    string   `json:"overview"`
	Players     int      `json:"players"`
	ReleaseDate string   `json:"release_date"`
	Genres      []string `json:"genres"`
}

type wireImage struct {
	Type     string `json:"type"`
	Side     string `json:"side"`
	FileName string `json:"filename"`
}

type wireBaseURL struct {
	Original string `json:"original"`
}

type imagesResponse struct {
	Code int `json:"code"`
	Data struct {
		BaseURL wireBaseURL            `json:"base_url"`
		Images  map[string][]wireImage `json:"images"`
	} `json:"data"`
}
