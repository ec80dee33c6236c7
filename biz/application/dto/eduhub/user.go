package eduhub

type SignInReq struct {
	Email string `form:"email" json:"email,required" query:"email" vd:"email($)"`
	Name  string `form:"name" json:"name,required" query:"name"`
}

type SignInResp struct {
	Id           string `form:"id" json:"id" query:"id"`
	AccessToken  string `form:"accessToken" json:"accessToken" query:"accessToken"`
	AccessExpire int64  `form:"accessExpire" json:"accessExpire" query:"accessExpire"`
	Name         string `form:"name" json:"name" query:"name"`
}

type GetUserInfoReq struct {
}

type GetUserInfoResp struct {
	Id    string `form:"id" json:"id" query:"id"`
	Name  string `form:"name" json:"name" query:"name"`
	Email string `form:"email" json:"email" query:"email"`
}
