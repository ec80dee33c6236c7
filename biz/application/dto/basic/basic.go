package basic

// UserMeta 从JWT中解析出的用户身份信息
type UserMeta struct {
	UserId          string `form:"userId" json:"userId" query:"userId"`
	AppId           int64  `form:"appId" json:"appId" query:"appId"`
	DeviceId        string `form:"deviceId" json:"deviceId" query:"deviceId"`
	SessionUserId   string `form:"sessionUserId" json:"sessionUserId" query:"sessionUserId"`
	SessionAppId    int64  `form:"sessionAppId" json:"sessionAppId" query:"sessionAppId"`
	SessionDeviceId string `form:"sessionDeviceId" json:"sessionDeviceId" query:"sessionDeviceId"`
	Email           string `form:"email" json:"email" query:"email"`
	Name            string `form:"name" json:"name" query:"name"`
}

func (u *UserMeta) GetUserId() string {
	if u == nil {
		return ""
	}
	return u.UserId
}

func (u *UserMeta) GetEmail() string {
	if u == nil {
		return ""
	}
	return u.Email
}

func (u *UserMeta) GetName() string {
	if u == nil {
		return ""
	}
	return u.Name
}

// PaginationOptions 分页参数
type PaginationOptions struct {
	Page      *int64  `form:"page" json:"page" query:"page"`
	Limit     *int64  `form:"limit" json:"limit" query:"limit"`
	Backward  *bool   `form:"backward" json:"backward" query:"backward"`
	LastToken *string `form:"lastToken" json:"lastToken" query:"lastToken"`
}
