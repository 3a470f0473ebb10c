package storage

import (
	"errors"

	"shortfactory/internal/types"

	"gorm.io/gorm"
)

func SaveTask(task *types.RenderTask) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	var existing types.RenderTask
	result := DB.Where("task_id = ?", task.TaskId).First(&existing)

	if result.Error == nil {
		task.Id = existing.Id
		return DB.Save(task).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(task).Error
	}
	return result.Error
}

func GetTask(taskId string) (*types.RenderTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var task types.RenderTask
	if err := DB.Preload("Outputs").Where("task_id = ?", taskId).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func GetTaskHistory(limit int) ([]types.RenderTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var tasks []types.RenderTask
	if err := DB.Preload("Outputs").Order("create_time desc").Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func DeleteTask(taskId string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Where("task_id = ?", taskId).Delete(&types.RenderTask{}).Error
}

// MarkStaleTasks marks tasks still in the processing state as failed. Called
// on server startup to clean up tasks interrupted by a previous shutdown.
func MarkStaleTasks() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&types.RenderTask{}).
		Where("status = ?", types.RenderTaskStatusProcessing).
		Updates(map[string]interface{}{
			"status":      types.RenderTaskStatusFailed,
			"fail_reason": "Task interrupted by server restart",
			"status_msg":  "Task interrupted",
		})
	return result.RowsAffected, result.Error
}
