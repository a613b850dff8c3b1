package repository

const (
	createTaskQuery = `INSERT INTO video_tasks (user_id, draft_id, engine, external_task_id, status, progress, eta_seconds, prompt, config)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING *`

	getTaskByIDQuery = `SELECT task_id, user_id, draft_id, engine, external_task_id, status, progress, eta_seconds, prompt, config,
					video_url, storage_path, durable_url, error_message, created_at, updated_at, completed_at
					FROM video_tasks WHERE task_id = $1`

	getTaskByExternalIDQuery = `SELECT task_id, user_id, draft_id, engine, external_task_id, status, progress, eta_seconds, prompt, config,
					video_url, storage_path, durable_url, error_message, created_at, updated_at, completed_at
					FROM video_tasks WHERE engine = $1 AND external_task_id = $2`

	getTasksByUserIDQuery = `SELECT task_id, user_id, draft_id, engine, external_task_id, status, progress, eta_seconds, prompt, config,
					video_url, storage_path, durable_url, error_message, created_at, updated_at, completed_at
					FROM video_tasks WHERE user_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	getTotalTasksByUserIDQuery = `SELECT COUNT(task_id) FROM video_tasks WHERE user_id = $1`

	getStaleTasksQuery = `SELECT task_id, user_id, draft_id, engine, external_task_id, status, progress, eta_seconds, prompt, config,
					video_url, storage_path, durable_url, error_message, created_at, updated_at, completed_at
					FROM video_tasks
					WHERE status IN ('pending', 'processing') AND updated_at < $1
					ORDER BY updated_at LIMIT $2`

	updateProgressQuery = `UPDATE video_tasks
					SET status = $2, progress = $3, eta_seconds = $4, updated_at = now()
					WHERE task_id = $1 AND status NOT IN ('completed', 'failed')
					RETURNING *`

	markCompletedQuery = `UPDATE video_tasks
					SET status = 'completed', progress = 100, video_url = $2, storage_path = $3, durable_url = $4,
					    updated_at = now(), completed_at = now()
					WHERE task_id = $1 AND status NOT IN ('completed', 'failed')
					RETURNING *`

	markFailedQuery = `UPDATE video_tasks
					SET status = 'failed', error_message = $2, updated_at = now()
					WHERE task_id = $1 AND status NOT IN ('completed', 'failed')
					RETURNING *`

	deleteTaskQuery = `DELETE FROM video_tasks WHERE task_id = $1 AND user_id = $2`
)
