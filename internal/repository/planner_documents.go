package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/utils"
)

// 每个用户的计划数据按数据类型各存一条 JSON 文档，
// 对应键空间 (user_id, data_type)，数据类型见 domain.PlannerDataTypes

func (r *Repository) GetPlannerDocument(userID int64, dataType string) ([]byte, error) {
	query := `
		SELECT document FROM planner_documents
		WHERE user_id = $1 AND data_type = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var document []byte
	if err := r.dbpool.QueryRowContext(ctx, query, userID, dataType).Scan(&document); err != nil {
		return nil, err
	}

	return document, nil
}

func (r *Repository) SavePlannerDocument(userID int64, dataType string, document []byte) error {
	query := `
		INSERT INTO planner_documents (user_id, data_type, document)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, data_type)
		DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, userID, dataType, document); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePlannerDocument(userID int64, dataType string) error {
	query := `
		DELETE FROM planner_documents WHERE user_id = $1 AND data_type = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, userID, dataType); err != nil {
		return err
	}

	return nil
}

// LoadPlannerData 组装单个用户的全部持久化数据。
// 缺失的数据类型保持零值；单条损坏的文档或规则只做记录并丢弃，不中断加载。
func (r *Repository) LoadPlannerData(userID int64) (*domain.PlannerData, error) {
	data := &domain.PlannerData{
		Schedules:    make([]domain.ScheduleRule, 0),
		StudyRecords: make(domain.StudyRecords),
		Completions:  make(domain.CompletionMarks),
	}

	for _, dataType := range domain.PlannerDataTypes {
		document, err := r.GetPlannerDocument(userID, dataType)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}

		var target any
		switch dataType {
		case domain.DataTypeVacationPeriod:
			target = &data.VacationPeriod
		case domain.DataTypeSchedules:
			target = &data.Schedules
		case domain.DataTypeStudyRecords:
			target = &data.StudyRecords
		case domain.DataTypeCompletedSchedules:
			target = &data.Completions
		}

		if err := json.Unmarshal(document, target); err != nil {
			slog.Warn("丢弃无法解析的计划数据文档", "userID", userID, "dataType", dataType, "error", err)
			continue
		}
	}

	data.Schedules = utils.FilterValidRules(data.Schedules)
	if data.StudyRecords == nil {
		data.StudyRecords = make(domain.StudyRecords)
	}
	if data.Completions == nil {
		data.Completions = make(domain.CompletionMarks)
	}

	return data, nil
}

func (r *Repository) SaveVacationPeriod(userID int64, vacation *domain.VacationPeriod) error {
	document, err := json.Marshal(vacation)
	if err != nil {
		return err
	}
	return r.SavePlannerDocument(userID, domain.DataTypeVacationPeriod, document)
}

func (r *Repository) SaveSchedules(userID int64, schedules []domain.ScheduleRule) error {
	document, err := json.Marshal(schedules)
	if err != nil {
		return err
	}
	return r.SavePlannerDocument(userID, domain.DataTypeSchedules, document)
}

func (r *Repository) SaveStudyRecords(userID int64, records domain.StudyRecords) error {
	document, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.SavePlannerDocument(userID, domain.DataTypeStudyRecords, document)
}

func (r *Repository) SaveCompletions(userID int64, completions domain.CompletionMarks) error {
	document, err := json.Marshal(completions)
	if err != nil {
		return err
	}
	return r.SavePlannerDocument(userID, domain.DataTypeCompletedSchedules, document)
}
