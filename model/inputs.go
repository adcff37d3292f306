package model

// Request inputs accepted by the HTTP layer. Field tags cover both JSON
// bodies and classic form posts, since the original pages submit forms.

type RegisterInput struct {
	Username     string `json:"username" form:"username"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	Confirmation string `json:"confirmation" form:"confirmation"`
}

type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type NewPostInput struct {
	Content string `json:"content" form:"content"`
}

type EditPostInput struct {
	Content string `json:"content"`
}

type FollowActionInput struct {
	// Action is either "follow" or "unfollow".
	Action string `json:"action" form:"action"`
}
