package transfer

type LinkedinPostList struct {
	Elements []LinkedinPost `json:"elements"`
}

type LinkedinPost struct {
	ID               string                  `json:"id"`
	Created          *LinkedinTimestamp      `json:"created"`
	FirstPublishedAt int64                   `json:"firstPublishedAt"`
	SpecificContent  LinkedinSpecificContent `json:"specificContent"`
}

type LinkedinTimestamp struct {
	Time int64 `json:"time"`
}

type LinkedinSpecificContent struct {
	ShareContent LinkedinShareContent `json:"com.linkedin.ugc.ShareContent"`
}

type LinkedinShareContent struct {
	ShareCommentary LinkedinText `json:"shareCommentary"`
	Media           []struct {
		Title       LinkedinText `json:"title"`
		Description LinkedinText `json:"description"`
		OriginalURL string       `json:"originalUrl"`
		Thumbnails  []struct {
			URL string `json:"url"`
		} `json:"thumbnails"`
	} `json:"media"`
}

type LinkedinText struct {
	Text string `json:"text"`
}
