package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/planner"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/utils"
)

// buildSchedule 从持久化数据重建完整的日程视图，假期未设置时返回 nil
func (h *Handler) buildSchedule(data *domain.PlannerData) (planner.Schedule, error) {
	if data.VacationPeriod == nil {
		return nil, nil
	}

	sched, err := planner.Expand(data.Schedules, *data.VacationPeriod)
	if err != nil {
		return nil, err
	}

	// 每天的活动按开始时间排序，跨天睡眠排在最后
	for date := range sched {
		slices.SortStableFunc(sched[date], func(a, b planner.Occurrence) int {
			aStart, _, errA := planner.ResolveInterval(a.StartTime, a.EndTime, a.Category)
			bStart, _, errB := planner.ResolveInterval(b.StartTime, b.EndTime, b.Category)
			if errA != nil || errB != nil {
				return 0
			}
			return aStart - bStart
		})
	}

	return sched, nil
}

func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, err := h.repository.LoadPlannerData(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取假期范围成功", data.VacationPeriod)
}

func (h *Handler) SetVacation(w http.ResponseWriter, r *http.Request) {
	var req domain.VacationPeriod

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateVacationPeriod(&req); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if err := h.repository.SaveVacationPeriod(myInfo.ID, &req); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "设置假期范围成功", req)
}

func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if err := h.repository.DeletePlannerDocument(myInfo.ID, domain.DataTypeVacationPeriod); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "清除假期范围成功", nil)
}

func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, err := h.repository.LoadPlannerData(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取日程规则成功", data.Schedules)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.ScheduleRule

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, err := h.repository.LoadPlannerData(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if data.VacationPeriod == nil {
		h.errorResponse(w, r, "请先设置假期范围")
		return
	}

	req.ID = utils.GenerateRuleID()
	req.CreatedAt = time.Now()

	if err := utils.ValidateScheduleRule(&req); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	// 与已有日程的时间冲突检查覆盖假期内每一个匹配日期
	if err := planner.ValidateRuleConflicts(&req, data.Schedules, *data.VacationPeriod); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	data.Schedules = append(data.Schedules, req)

	if err := h.repository.SaveSchedules(myInfo.ID, data.Schedules); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "登记日程成功", req)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "id")

	var req domain.ScheduleRule

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, err := h.repository.LoadPlannerData(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if data.VacationPeriod == nil {
		h.errorResponse(w, r, "请先设置假期范围")
		return
	}

	idx := slices.IndexFunc(data.Schedules, func(rule domain.ScheduleRule) bool {
		return rule.ID == ruleID
	})
	if idx < 0 {
		h.errorResponse(w, r, "日程不存在")
		return
	}

	// ID 和创建时间不允许修改
	req.ID = ruleID
	req.CreatedAt = data.Schedules[idx].CreatedAt

	if err := utils.ValidateScheduleRule(&req); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := planner.ValidateRuleConflicts(&req, data.Schedules, *data.VacationPeriod); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	data.Schedules[idx] = req

	if err := h.repository.SaveSchedules(myInfo.ID, data.Schedules); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "修改日程成功", req)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "id")

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, err := h.repository.LoadPlannerData(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	idx := slices.IndexFunc(data.Schedules, func(rule domain.ScheduleRule) bool {
		return rule.ID == ruleID
	})
	if idx < 0 {
		h.errorResponse(w, r, "日程不存在")
		return
	}

	data.Schedules = slices.Delete(data.Schedules, idx, idx+1)

	if err := h.repository.SaveSchedules(myInfo.ID, data.Schedules); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除日程成功", nil)
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, err := h.repository.LoadPlannerData(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if data.VacationPeriod == nil {
		h.errorResponse(w, r, "请先设置假期范围")
		return
	}

	sched, err := h.buildSchedule(data)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.successResponse(w, r, "获取日历成功", map[string]any{
		"vacation":     data.VacationPeriod,
		"schedule":     sched,
		"studyRecords": data.StudyRecords,
		"completions":  data.Completions,
	})
}

// saveStudyRecord 校验自习时段存在且时长合法后写入实绩，供本人和分享链接共用
func (h *Handler) saveStudyRecord(userID int64, date, slotID string, record domain.StudyRecord) (string, error) {
	data, err := h.repository.LoadPlannerData(userID)
	if err != nil {
		return "", err
	}

	if data.VacationPeriod == nil {
		return "请先设置假期范围", nil
	}

	sched, err := h.buildSchedule(data)
	if err != nil {
		return err.Error(), nil
	}

	occs, ok := sched[date]
	if !ok {
		return "日期不在假期范围内", nil
	}

	idx := slices.IndexFunc(occs, func(occ planner.Occurrence) bool {
		return occ.IsStudySlot && occ.SlotID() == slotID
	})
	if idx < 0 {
		return "自习时段不存在", nil
	}

	// 登记的分钟数不能超过该时段的长度
	if record.Minutes < 0 || record.Minutes > occs[idx].Duration {
		return "学习时长超出该时段范围", nil
	}

	if data.StudyRecords == nil {
		data.StudyRecords = domain.StudyRecords{}
	}
	if data.StudyRecords[date] == nil {
		data.StudyRecords[date] = map[string]domain.StudyRecord{}
	}
	record.Timestamp = time.Now()
	data.StudyRecords[date][slotID] = record

	if err := h.repository.SaveStudyRecords(userID, data.StudyRecords); err != nil {
		return "", err
	}

	return "", nil
}

func (h *Handler) SaveStudyRecord(w http.ResponseWriter, r *http.Request) {
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

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	msg, err := h.saveStudyRecord(myInfo.ID, req.Date, req.SlotID, domain.StudyRecord{
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

func (h *Handler) DeleteStudyRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string `json:"date" validate:"required"`
		SlotID string `json:"slotId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, err := h.repository.LoadPlannerData(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if _, ok := data.StudyRecords[req.Date][req.SlotID]; !ok {
		h.errorResponse(w, r, "该时段没有学习实绩")
		return
	}

	delete(data.StudyRecords[req.Date], req.SlotID)
	if len(data.StudyRecords[req.Date]) == 0 {
		delete(data.StudyRecords, req.Date)
	}

	if err := h.repository.SaveStudyRecords(myInfo.ID, data.StudyRecords); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除学习实绩成功", nil)
}

func (h *Handler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date       string `json:"date" validate:"required"`
		ScheduleID string `json:"scheduleId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	data, err := h.repository.LoadPlannerData(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !slices.ContainsFunc(data.Schedules, func(rule domain.ScheduleRule) bool {
		return rule.ID == req.ScheduleID
	}) {
		h.errorResponse(w, r, "日程不存在")
		return
	}

	if data.Completions == nil {
		data.Completions = domain.CompletionMarks{}
	}

	completed := false
	if _, ok := data.Completions[req.Date][req.ScheduleID]; ok {
		delete(data.Completions[req.Date], req.ScheduleID)
		if len(data.Completions[req.Date]) == 0 {
			delete(data.Completions, req.Date)
		}
	} else {
		if data.Completions[req.Date] == nil {
			data.Completions[req.Date] = map[string]bool{}
		}
		data.Completions[req.Date][req.ScheduleID] = true
		completed = true
	}

	if err := h.repository.SaveCompletions(myInfo.ID, data.Completions); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "切换完成状态成功", map[string]any{
		"date":       req.Date,
		"scheduleId": req.ScheduleID,
		"completed":  completed,
	})
}
