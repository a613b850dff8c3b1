package repository

const (
	createUserQuery = `INSERT INTO users (fullname, email, password, username, role, created_at, updated_at)
						VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'user')::user_role, now(), now())
						RETURNING *`

	getUserQuery = `SELECT user_id, fullname, username, email, role, created_at, updated_at
					 FROM users
					 WHERE user_id = $1`

	getUserByEmailQuery = `SELECT user_id, fullname, username, password, email, role, created_at, updated_at
						FROM users WHERE email = $1`
)
