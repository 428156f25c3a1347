package dto

// TokenRequest 管理令牌签发请求
type TokenRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// TokenResponse 管理令牌响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in" example:"7200"`
}
