package places

// Wire types for the provider's JSON responses. Optional fields are
// pointers so a missing key is distinguishable from a zero value.

type wireLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location wireLocation `json:"location"`
}

type openingHours struct {
	OpenNow *bool `json:"open_now"`
}

type photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type wireReview struct {
	AuthorName string   `json:"author_name"`
	Rating     *float64 `json:"rating"`
	Text       string   `json:"text"`
	Time       *int64   `json:"time"`
}

type placeResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Vicinity         string        `json:"vicinity"`
	FormattedAddress string        `json:"formatted_address"`
	Geometry         *geometry     `json:"geometry"`
	Rating           *float64      `json:"rating"`
	UserRatingsTotal *int          `json:"user_ratings_total"`
	Types            []string      `json:"types"`
	OpeningHours     *openingHours `json:"opening_hours"`
	PriceLevel       *int          `json:"price_level"`
	Photos           []photo       `json:"photos"`
	Reviews          []wireReview  `json:"reviews"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry geometry `json:"geometry"`
	} `json:"results"`
}

type nearbyResponse struct {
	Status  string        `json:"status"`
	Results []placeResult `json:"results"`
}

type detailsResponse struct {
	Status string       `json:"status"`
	Result *placeResult `json:"result"`
}

type matrixElement struct {
	Status   string `json:"status"`
	Distance *struct {
		Value float64 `json:"value"`
	} `json:"distance"`
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
}
