package handler

import (
	"net/http"
	"time"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/planner"
)

// loadScheduleWithData 加载持久化数据并重建日程视图，假期未设置时直接响应错误
func (h *Handler) loadScheduleWithData(w http.ResponseWriter, r *http.Request, userID int64) (*domain.PlannerData, planner.Schedule, bool) {
	data, err := h.repository.LoadPlannerData(userID)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, nil, false
	}

	if data.VacationPeriod == nil {
		h.errorResponse(w, r, "请先设置假期范围")
		return nil, nil, false
	}

	sched, err := h.buildSchedule(data)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return nil, nil, false
	}

	return data, sched, true
}

// 解析 ?date= 参数，缺省为今天
func queryDate(r *http.Request) (time.Time, error) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return planner.ParseDate(dateParam)
}

func (h *Handler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, sched, ok := h.loadScheduleWithData(w, r, myInfo.ID)
	if !ok {
		return
	}

	stats := planner.ComputeDailyStats(date.Format(planner.DateLayout), sched, data.StudyRecords)

	h.successResponse(w, r, "获取单日统计成功", stats)
}

func (h *Handler) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, sched, ok := h.loadScheduleWithData(w, r, myInfo.ID)
	if !ok {
		return
	}

	weekStart, weekEnd := planner.WeekRange(date)
	stats := planner.ComputeRangeStats(weekStart, weekEnd, *data.VacationPeriod, sched, data.StudyRecords)

	h.successResponse(w, r, "获取周统计成功", stats)
}

func (h *Handler) GetElapsedStats(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, sched, ok := h.loadScheduleWithData(w, r, myInfo.ID)
	if !ok {
		return
	}

	start, err := planner.ParseDate(data.VacationPeriod.Start)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	end, err := planner.ParseDate(data.VacationPeriod.End)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	// 统计到今天为止，假期已结束则统计到假期最后一天
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(end) {
		end = today
	}
	if end.Before(start) {
		h.errorResponse(w, r, "假期还未开始")
		return
	}

	stats := planner.ComputeRangeStats(start, end, *data.VacationPeriod, sched, data.StudyRecords)

	h.successResponse(w, r, "获取假期累计统计成功", stats)
}
