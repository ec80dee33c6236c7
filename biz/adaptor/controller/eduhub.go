package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"edu-hub/biz/adaptor"
	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/redis"
	"edu-hub/biz/infrastructure/util"
	"edu-hub/biz/infrastructure/util/log"
	"edu-hub/provider"

	"github.com/cloudwego/hertz/pkg/app"
	hertzconsts "github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/protocol/sse"
)

func Ping(_ context.Context, c *app.RequestContext) {
	c.JSON(hertzconsts.StatusOK, map[string]string{"message": "pong"})
}

func SignIn(ctx context.Context, c *app.RequestContext) {
	var req eduhub.SignInReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.UserService.SignIn(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetUserInfo(ctx context.Context, c *app.RequestContext) {
	var req eduhub.GetUserInfoReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.UserService.GetUserInfo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func CreateHub(ctx context.Context, c *app.RequestContext) {
	var req eduhub.CreateHubReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.HubService.CreateHub(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func JoinHub(ctx context.Context, c *app.RequestContext) {
	var req eduhub.JoinHubReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.HubService.JoinHub(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetHubs(ctx context.Context, c *app.RequestContext) {
	var req eduhub.GetHubsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.HubService.GetHubs(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetHubIntroductory(ctx context.Context, c *app.RequestContext) {
	var req eduhub.GetHubIntroductoryReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.HubService.GetHubIntroductory(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetHubPage(ctx context.Context, c *app.RequestContext) {
	var req eduhub.GetHubPageReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.HubService.GetHubPage(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func SendMessage(ctx context.Context, c *app.RequestContext) {
	var req eduhub.SendMessageReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.HubService.SendMessage(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetMessages(ctx context.Context, c *app.RequestContext) {
	var req eduhub.GetMessagesReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.HubService.GetMessages(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func CreatePost(ctx context.Context, c *app.RequestContext) {
	var req eduhub.CreatePostReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.PostService.CreatePost(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ChatWithMaterial(ctx context.Context, c *app.RequestContext) {
	var req eduhub.ChatWithMaterialReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ChatService.ChatWithMaterial(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ChatWithRecording(ctx context.Context, c *app.RequestContext) {
	var req eduhub.ChatWithRecordingReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ChatService.ChatWithRecording(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func CreateQuiz(ctx context.Context, c *app.RequestContext) {
	var req eduhub.CreateQuizReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.QuizService.CreateQuiz(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetQuiz(ctx context.Context, c *app.RequestContext) {
	var req eduhub.GetQuizReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.QuizService.GetQuiz(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func CreateRecording(ctx context.Context, c *app.RequestContext) {
	var req eduhub.CreateRecordingReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.RecordingService.CreateRecording(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func RecordingWebhook(ctx context.Context, c *app.RequestContext) {
	var req eduhub.RecordingWebhookReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.RecordingService.RecordingWebhook(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GenerateAssignment(ctx context.Context, c *app.RequestContext) {
	var req eduhub.GenerateAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.GenerateAssignment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ModifyAssignment(ctx context.Context, c *app.RequestContext) {
	var req eduhub.ModifyAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.ModifyAssignment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func CreateAssignmentUsingAI(ctx context.Context, c *app.RequestContext) {
	var req eduhub.CreateAssignmentUsingAIReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.CreateAssignmentUsingAI(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetAssignment(ctx context.Context, c *app.RequestContext) {
	var req eduhub.GetAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.GetAssignment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func SubmitAssignment(ctx context.Context, c *app.RequestContext) {
	var req eduhub.SubmitAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.SubmitAssignment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func AssessAssignment(ctx context.Context, c *app.RequestContext) {
	var req eduhub.AssessAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(hertzconsts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.AssessAssignment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GenerateAssignmentEvents 订阅生成会话频道并以SSE转发给客户端
// 草稿每次写入都会整包推送，客户端断开即退订
func GenerateAssignmentEvents(ctx context.Context, c *app.RequestContext) {
	sessionId := c.Param("sessionId")
	channel := fmt.Sprintf("generate_assignment_id_%s", sessionId)

	c.SetStatusCode(http.StatusOK)
	w := sse.NewWriter(c)

	resultChan := make(chan string, 100)

	go func(ctx context.Context) {
		defer close(resultChan)
		sub := redis.GetPubSubClient(config.GetConfig()).Subscribe(ctx, channel)
		defer sub.Close()

		util.SendStreamMessage(resultChan, util.STInit, "已订阅生成进度", nil)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				util.SendStreamMessage(resultChan, util.STPart, "", json.RawMessage(msg.Payload))
			}
		}
	}(ctx)

	for jsonMessage := range resultChan {
		if err := w.WriteEvent("", "", []byte(jsonMessage)); err != nil {
			log.Error("发送SSE事件失败: %v", err)
			break
		}
	}
}
