package transfer

// Facebook and Instagram share the Graph API response layout.

type GraphPostList struct {
	Data []GraphPost `json:"data"`
}

type GraphPost struct {
	ID           string             `json:"id"`
	Message      string             `json:"message"`
	Story        string             `json:"story"`
	Caption      string             `json:"caption"`
	CreatedTime  string             `json:"created_time"`
	Timestamp    string             `json:"timestamp"`
	PermalinkURL string             `json:"permalink_url"`
	Permalink    string             `json:"permalink"`
	FullPicture  string             `json:"full_picture"`
	MediaURL     string             `json:"media_url"`
	ThumbnailURL string             `json:"thumbnail_url"`
	LikeCount    int64              `json:"like_count"`
	CommentCount int64              `json:"comments_count"`
	Likes        *GraphSummaryField `json:"likes"`
	Comments     *GraphSummaryField `json:"comments"`
}

type GraphSummaryField struct {
	Summary struct {
		TotalCount int64 `json:"total_count"`
	} `json:"summary"`
}

type GraphErrorResponse struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}
