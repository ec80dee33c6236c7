package eduhub

import "edu-hub/biz/application/dto/basic"

type CreateHubReq struct {
	Name        string `form:"name" json:"name,required" query:"name" vd:"len($) > 0 && len($) <= 100"`
	Section     string `form:"section" json:"section" query:"section"`
	Description string `form:"description" json:"description" query:"description" vd:"len($) <= 280"`
	ThemeColor  string `form:"themeColor" json:"themeColor" query:"themeColor"`
	PhotoUrl    string `form:"photoUrl" json:"photoUrl" query:"photoUrl"`
}

type CreateHubResp struct {
	HubId      string `form:"hubId" json:"hubId" query:"hubId"`
	InviteCode string `form:"inviteCode" json:"inviteCode" query:"inviteCode"`
}

type JoinHubReq struct {
	InviteCode string `form:"inviteCode" json:"inviteCode,required" query:"inviteCode"`
}

type GetHubsReq struct {
}

type HubInfo struct {
	HubId       string `form:"hubId" json:"hubId" query:"hubId"`
	Name        string `form:"name" json:"name" query:"name"`
	Section     string `form:"section" json:"section" query:"section"`
	Description string `form:"description" json:"description" query:"description"`
	Role        string `form:"role" json:"role" query:"role"`
	CreatedAt   int64  `form:"createdAt" json:"createdAt" query:"createdAt"`
}

type GetHubsResp struct {
	Hubs []*HubInfo `form:"hubs" json:"hubs" query:"hubs"`
}

type GetHubIntroductoryReq struct {
	HubId string `form:"hubId" json:"hubId,required" query:"hubId" path:"hubId"`
}

type GetHubIntroductoryResp struct {
	Name        string   `form:"name" json:"name" query:"name"`
	Section     string   `form:"section" json:"section" query:"section"`
	Description string   `form:"description" json:"description" query:"description"`
	ThemeColor  string   `form:"themeColor" json:"themeColor" query:"themeColor"`
	PhotoUrl    string   `form:"photoUrl" json:"photoUrl" query:"photoUrl"`
	Topics      []string `form:"topics" json:"topics" query:"topics"`
	MemberCount int64    `form:"memberCount" json:"memberCount" query:"memberCount"`
}

type GetHubPageReq struct {
	HubId string `form:"hubId" json:"hubId,required" query:"hubId" path:"hubId"`
	Page  int64  `form:"page" json:"page" query:"page" path:"page"`
}

// FeedItem 分页动态流中的一项，来源于帖子、录制、测验或作业
type FeedItem struct {
	Kind          string   `form:"kind" json:"kind" query:"kind"`
	Uuid          string   `form:"uuid" json:"uuid" query:"uuid"`
	Title         string   `form:"title" json:"title" query:"title"`
	Description   string   `form:"description" json:"description" query:"description"`
	Topic         string   `form:"topic" json:"topic" query:"topic"`
	AssignmentIds []string `form:"assignmentIds" json:"assignmentIds" query:"assignmentIds"`
	TotalPoints   int64    `form:"totalPoints" json:"totalPoints" query:"totalPoints"`
	Due           int64    `form:"due" json:"due" query:"due"`
	CreatedAt     int64    `form:"createdAt" json:"createdAt" query:"createdAt"`
}

type GetHubPageResp struct {
	Items []*FeedItem `form:"items" json:"items" query:"items"`
	Total int64       `form:"total" json:"total" query:"total"`
}

type SendMessageReq struct {
	HubId   string `form:"hubId" json:"hubId,required" query:"hubId" path:"hubId"`
	Content string `form:"content" json:"content,required" query:"content"`
}

type GetMessagesReq struct {
	HubId string `form:"hubId" json:"hubId,required" query:"hubId" path:"hubId"`
	*basic.PaginationOptions
}

type MessageInfo struct {
	Id        string `form:"id" json:"id" query:"id"`
	Name      string `form:"name" json:"name" query:"name"`
	Email     string `form:"email" json:"email" query:"email"`
	Content   string `form:"content" json:"content" query:"content"`
	CreatedAt int64  `form:"createdAt" json:"createdAt" query:"createdAt"`
}

type GetMessagesResp struct {
	Messages []*MessageInfo `form:"messages" json:"messages" query:"messages"`
	Total    int64          `form:"total" json:"total" query:"total"`
}
