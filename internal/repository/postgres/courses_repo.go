package postgres

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type coursesRepo struct{ pool *pgxpool.Pool }

const courseCols = `id, owner_id, title, description, category, cover_url, created_at, updated_at`

func scanCourse(row pgx.Row) (models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.Category, &c.CoverURL, &c.CreatedAt, &c.UpdatedAt)
	return c, mapErr(err)
}

func (r *coursesRepo) Create(ctx context.Context, c models.Course) (models.Course, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return scanCourse(r.pool.QueryRow(ctx,
		`INSERT INTO courses(id, owner_id, title, description, category, cover_url)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+courseCols,
		c.ID, c.OwnerID, c.Title, c.Description, c.Category, c.CoverURL,
	))
}

func (r *coursesRepo) GetByID(ctx context.Context, id string) (models.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseCols+` FROM courses WHERE id=$1`, id))
}

func (r *coursesRepo) List(ctx context.Context, limit, offset int) ([]models.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseCols+` FROM courses ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *coursesRepo) Update(ctx context.Context, c models.Course) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE courses SET title=$2, description=$3, category=$4, cover_url=$5, updated_at=now()
		  WHERE id=$1`,
		c.ID, c.Title, c.Description, c.Category, c.CoverURL,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

func (r *coursesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id=$1`, id)
	return mapErr(err)
}

func (r *coursesRepo) AddModule(ctx context.Context, m models.CourseModule) (models.CourseModule, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO course_modules(id, course_id, title, position) VALUES($1,$2,$3,$4)`,
		m.ID, m.CourseID, m.Title, m.Position,
	)
	if err != nil {
		return models.CourseModule{}, mapErr(err)
	}
	return m, nil
}

func (r *coursesRepo) GetModule(ctx context.Context, id string) (models.CourseModule, error) {
	var m models.CourseModule
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, title, position FROM course_modules WHERE id=$1`, id,
	).Scan(&m.ID, &m.CourseID, &m.Title, &m.Position)
	return m, mapErr(err)
}

func (r *coursesRepo) AddLesson(ctx context.Context, l models.Lesson) (models.Lesson, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO lessons(id, module_id, title, video_url, duration_seconds, position)
		 VALUES($1,$2,$3,$4,$5,$6)`,
		l.ID, l.ModuleID, l.Title, l.VideoURL, l.DurationSeconds, l.Position,
	)
	if err != nil {
		return models.Lesson{}, mapErr(err)
	}
	return l, nil
}

func (r *coursesRepo) Content(ctx context.Context, courseID string) (models.CourseContent, error) {
	course, err := r.GetByID(ctx, courseID)
	if err != nil {
		return models.CourseContent{}, err
	}

	moduleRows, err := r.pool.Query(ctx,
		`SELECT id, course_id, title, position FROM course_modules
		  WHERE course_id=$1 ORDER BY position, title`,
		courseID,
	)
	if err != nil {
		return models.CourseContent{}, mapErr(err)
	}
	defer moduleRows.Close()

	content := models.CourseContent{Course: course}
	index := map[string]int{}
	for moduleRows.Next() {
		var m models.CourseModule
		if err := moduleRows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Position); err != nil {
			return models.CourseContent{}, err
		}
		index[m.ID] = len(content.Modules)
		content.Modules = append(content.Modules, models.ModuleContent{Module: m})
	}
	if err := moduleRows.Err(); err != nil {
		return models.CourseContent{}, err
	}

	lessonRows, err := r.pool.Query(ctx,
		`SELECT l.id, l.module_id, l.title, l.video_url, l.duration_seconds, l.position
		   FROM lessons l
		   JOIN course_modules m ON m.id = l.module_id
		  WHERE m.course_id=$1
		  ORDER BY l.position, l.title`,
		courseID,
	)
	if err != nil {
		return models.CourseContent{}, mapErr(err)
	}
	defer lessonRows.Close()

	for lessonRows.Next() {
		var l models.Lesson
		if err := lessonRows.Scan(&l.ID, &l.ModuleID, &l.Title, &l.VideoURL, &l.DurationSeconds, &l.Position); err != nil {
			return models.CourseContent{}, err
		}
		if i, ok := index[l.ModuleID]; ok {
			content.Modules[i].Lessons = append(content.Modules[i].Lessons, l)
		}
	}
	return content, lessonRows.Err()
}
