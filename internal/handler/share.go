package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/utils"
)

// 分享模式：view 只读，record 允许登记学习实绩
const (
	shareModeView   = "view"
	shareModeRecord = "record"
)

func shareKey(mode string, userID int64) string {
	return fmt.Sprintf("share:%s:%d", mode, userID)
}

func tokenKey(mode, token string) string {
	return fmt.Sprintf("token:%s:%s", mode, token)
}

func (h *Handler) shareTTL() time.Duration {
	return time.Duration(h.config.Share.ExpirationDays) * 24 * time.Hour
}

func (h *Handler) redisCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
}

func (h *Handler) GetShareStatus(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	ctx, cancel := h.redisCtx(r)
	defer cancel()

	status := map[string]any{}
	for _, mode := range []string{shareModeView, shareModeRecord} {
		token, err := h.redisClient.Get(ctx, shareKey(mode, myInfo.ID)).Result()
		switch {
		case err == redis.Nil:
			status[mode] = nil
		case err != nil:
			h.internalServerError(w, r, err)
			return
		default:
			status[mode] = token
		}
	}

	h.successResponse(w, r, "获取分享状态成功", status)
}

func (h *Handler) GenerateShareLinks(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	ctx, cancel := h.redisCtx(r)
	defer cancel()

	// 重新生成会使旧令牌失效
	if err := h.revokeShareLinks(r, myInfo.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	tokens := map[string]string{
		shareModeView:   utils.GenerateShareToken(),
		shareModeRecord: utils.GenerateShareToken(),
	}

	for mode, token := range tokens {
		if err := h.redisClient.Set(ctx, shareKey(mode, myInfo.ID), token, h.shareTTL()).Err(); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if err := h.redisClient.Set(ctx, tokenKey(mode, token), strconv.FormatInt(myInfo.ID, 10), h.shareTTL()).Err(); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "生成分享链接成功", tokens)
}

func (h *Handler) revokeShareLinks(r *http.Request, userID int64) error {
	ctx, cancel := h.redisCtx(r)
	defer cancel()

	for _, mode := range []string{shareModeView, shareModeRecord} {
		token, err := h.redisClient.Get(ctx, shareKey(mode, userID)).Result()
		switch {
		case err == redis.Nil:
			continue
		case err != nil:
			return err
		}

		if err := h.redisClient.Del(ctx, tokenKey(mode, token), shareKey(mode, userID)).Err(); err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) RevokeShareLinks(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if err := h.revokeShareLinks(r, myInfo.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "撤销分享链接成功", nil)
}

// resolveShareToken 把分享令牌解析成用户 ID 和分享模式
func (h *Handler) resolveShareToken(r *http.Request, token string) (int64, string, error) {
	ctx, cancel := h.redisCtx(r)
	defer cancel()

	for _, mode := range []string{shareModeRecord, shareModeView} {
		idString, err := h.redisClient.Get(ctx, tokenKey(mode, token)).Result()
		switch {
		case err == redis.Nil:
			continue
		case err != nil:
			return 0, "", err
		}

		userID, err := strconv.ParseInt(idString, 10, 64)
		if err != nil {
			return 0, "", err
		}
		return userID, mode, nil
	}

	return 0, "", nil
}

func (h *Handler) GetSharedCalendar(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	userID, mode, err := h.resolveShareToken(r, token)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if mode == "" {
		h.errorResponse(w, r, "分享链接无效或已过期")
		return
	}

	data, err := h.repository.LoadPlannerData(userID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if data.VacationPeriod == nil {
		h.errorResponse(w, r, "对方还未设置假期范围")
		return
	}

	sched, err := h.buildSchedule(data)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.successResponse(w, r, "获取分享日历成功", map[string]any{
		"mode":         mode,
		"vacation":     data.VacationPeriod,
		"schedule":     sched,
		"studyRecords": data.StudyRecords,
		"completions":  data.Completions,
	})
}

func (h *Handler) SaveSharedStudyRecord(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	userID, mode, err := h.resolveShareToken(r, token)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if mode == "" {
		h.errorResponse(w, r, "分享链接无效或已过期")
		return
	}
	if mode != shareModeRecord {
		h.errorResponse(w, r, "该分享链接没有登记权限")
		return
	}

	var req struct {
		Date    string `json:"date" validate:"required"`
		SlotID  string `json:"slotId" validate:"required"`
		Minutes int    `json:"minutes"`
		Subject string `json:"subject"`
		Notes   string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	msg, err := h.saveStudyRecord(userID, req.Date, req.SlotID, domain.StudyRecord{
		Minutes: req.Minutes,
		Subject: req.Subject,
		Notes:   req.Notes,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if msg != "" {
		h.errorResponse(w, r, msg)
		return
	}

	h.successResponse(w, r, "登记学习实绩成功", nil)
}
