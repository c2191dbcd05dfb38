package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/parser"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/queue"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
	"go.uber.org/zap"
)

// ImportService runs asynchronous menu imports from Google Sheets. The
// HTTP handler only enqueues a task; the worker drives ProcessImportTask.
type ImportService struct {
	taskRepo repo.ImportTaskRepository
	menu     *MenuService
	parser   *parser.GoogleSheetsParser // nil when no credentials are configured
	broker   queue.Broker
	logger   *zap.SugaredLogger
}

func NewImportService(
	taskRepo repo.ImportTaskRepository,
	menu *MenuService,
	parser *parser.GoogleSheetsParser,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *ImportService {
	return &ImportService{
		taskRepo: taskRepo,
		menu:     menu,
		parser:   parser,
		broker:   broker,
		logger:   logger,
	}
}

func (s *ImportService) Enabled() bool {
	return s.parser != nil && s.broker != nil && s.taskRepo != nil
}

func (s *ImportService) CreateImportTask(ctx context.Context, spreadsheetID, readRange string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("menu import is not configured")
	}

	task := &domain.ImportTask{
		Status:        domain.ImportQueued,
		SpreadsheetID: spreadsheetID,
		ReadRange:     readRange,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return "", fmt.Errorf("failed to create import task: %w", err)
	}

	message := domain.MenuImportMessage{
		TaskID:        task.ID,
		SpreadsheetID: spreadsheetID,
		ReadRange:     readRange,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueMenuImport, messageBytes); err != nil {
		_ = s.taskRepo.UpdateStatus(ctx, task.ID, domain.ImportFailed, err.Error())
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("import task created", "task_id", task.ID, "spreadsheet_id", spreadsheetID)

	return task.ID, nil
}

func (s *ImportService) GetTaskStatus(ctx context.Context, taskID string) (*domain.ImportTask, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get import task: %w", err)
	}

	return task, nil
}

// ProcessImportTask parses the sheet and creates one menu item per row.
// Items go through MenuService.Create so validation, the in-memory cache,
// and live updates all behave as if a cashier added them by hand.
func (s *ImportService) ProcessImportTask(ctx context.Context, taskID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportProcessing, ""); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Infow("processing import task", "task_id", taskID)

	items, err := s.parser.ParseMenuItems(ctx, task.SpreadsheetID, task.ReadRange)
	if err != nil {
		s.logger.Errorw("failed to parse spreadsheet", "task_id", taskID, "error", err)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error())
		_ = s.taskRepo.IncrementRetryCount(ctx, taskID)
		return fmt.Errorf("failed to parse spreadsheet: %w", err)
	}

	created := 0
	for i := range items {
		if err := s.menu.Create(ctx, &items[i]); err != nil {
			s.logger.Errorw("failed to create imported item",
				"task_id", taskID,
				"name", items[i].Name,
				"error", err,
			)
			continue
		}
		created++
	}

	if created == 0 {
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.ImportFailed, "no items could be created")
		return fmt.Errorf("no items could be created from %d parsed rows", len(items))
	}

	if err := s.taskRepo.Complete(ctx, taskID, created); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	s.logger.Infow("import task completed", "task_id", taskID, "item_count", created)

	return nil
}
