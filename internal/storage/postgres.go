package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamguard-id/DreamGuard/internal"
)

// PostgresStorage implements every repository on a pgx connection pool.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	s := &PostgresStorage{pool: pool, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (p *PostgresStorage) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			uid TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			age INT,
			gender TEXT,
			occupation INT,
			goal_hours INT,
			goal_minutes INT,
			profile_picture TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS predictions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			input JSONB NOT NULL,
			bmi_category INT NOT NULL,
			result JSONB NOT NULL,
			sequence_number INT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS prediction_counters (
			user_id TEXT PRIMARY KEY,
			seq INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS schedules (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			bed_time TEXT NOT NULL,
			wake_up_time TEXT NOT NULL,
			wake_up_alarm BOOL NOT NULL,
			sleep_reminders BOOL NOT NULL,
			planned_duration TEXT NOT NULL,
			actual_bed_time TEXT,
			actual_wake_up_time TEXT,
			actual_duration TEXT,
			difference TEXT,
			sleep_quality INT,
			notes TEXT,
			created_at TEXT NOT NULL,
			inserted_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			user_id TEXT NOT NULL,
			feedback TEXT NOT NULL,
			feedback_number INT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS model_meta (
			key TEXT PRIMARY KEY,
			model_url TEXT NOT NULL,
			file_name TEXT NOT NULL,
			version TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			p.logger.Errorf("failed to ensure schema: %v", err)
			return err
		}
	}
	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- ProfileRepository ---

func (p *PostgresStorage) SaveProfile(ctx context.Context, profile *internal.UserProfile) error {
	var goalHours, goalMinutes *int
	if profile.SleepGoal != nil {
		goalHours = &profile.SleepGoal.Hours
		goalMinutes = &profile.SleepGoal.Minutes
	}
	_, err := p.pool.Exec(ctx, `INSERT INTO user_profiles (uid, email, name, age, gender, occupation, goal_hours, goal_minutes, profile_picture, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (uid) DO UPDATE SET email = $2, name = $3, age = $4, gender = $5, occupation = $6, goal_hours = $7, goal_minutes = $8, profile_picture = $9`,
		profile.UID, profile.Email, profile.Name, profile.Age, profile.Gender, profile.Occupation, goalHours, goalMinutes, profile.ProfilePicture, profile.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert profile: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetProfile(ctx context.Context, uid string) (*internal.UserProfile, error) {
	row := p.pool.QueryRow(ctx, `SELECT uid, email, name, age, gender, occupation, goal_hours, goal_minutes, profile_picture, created_at FROM user_profiles WHERE uid = $1`, uid)
	var (
		profile                internal.UserProfile
		goalHours, goalMinutes *int
	)
	err := row.Scan(&profile.UID, &profile.Email, &profile.Name, &profile.Age, &profile.Gender, &profile.Occupation, &goalHours, &goalMinutes, &profile.ProfilePicture, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan profile: %v", err)
		return nil, err
	}
	if goalHours != nil && goalMinutes != nil {
		profile.SleepGoal = &internal.SleepGoal{Hours: *goalHours, Minutes: *goalMinutes}
	}
	return &profile, nil
}

func (p *PostgresStorage) DeleteProfile(ctx context.Context, uid string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM user_profiles WHERE uid = $1`, uid)
	if err != nil {
		p.logger.Errorf("failed to delete profile: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- PredictionRepository ---

func (p *PostgresStorage) NextSequence(ctx context.Context, uid string) (int, error) {
	// Single-statement upsert keeps the counter atomic under concurrent
	// submissions for the same user.
	row := p.pool.QueryRow(ctx, `INSERT INTO prediction_counters (user_id, seq) VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET seq = prediction_counters.seq + 1
		RETURNING seq`, uid)
	var seq int
	if err := row.Scan(&seq); err != nil {
		p.logger.Errorf("failed to advance prediction counter: %v", err)
		return 0, err
	}
	return seq, nil
}

func (p *PostgresStorage) SavePrediction(ctx context.Context, rec *internal.PredictionRecord) error {
	input, err := json.Marshal(rec.Input)
	if err != nil {
		return err
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO predictions (id, user_id, input, bmi_category, result, sequence_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.UserID, input, rec.BMICategory, result, rec.SequenceNumber, rec.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert prediction: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListPredictions(ctx context.Context, uid string) ([]internal.PredictionRecord, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, input, bmi_category, result, sequence_number, created_at
		FROM predictions WHERE user_id = $1 ORDER BY sequence_number ASC`, uid)
	if err != nil {
		p.logger.Errorf("failed to query predictions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var recs []internal.PredictionRecord
	for rows.Next() {
		rec, err := scanPrediction(rows)
		if err != nil {
			p.logger.Errorf("failed to scan prediction: %v", err)
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (p *PostgresStorage) GetPrediction(ctx context.Context, uid, id string) (*internal.PredictionRecord, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, input, bmi_category, result, sequence_number, created_at
		FROM predictions WHERE user_id = $1 AND id = $2`, uid, id)
	rec, err := scanPrediction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan prediction: %v", err)
		return nil, err
	}
	return rec, nil
}

func scanPrediction(row pgx.Row) (*internal.PredictionRecord, error) {
	var (
		rec           internal.PredictionRecord
		input, result []byte
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &input, &rec.BMICategory, &result, &rec.SequenceNumber, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(input, &rec.Input); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (p *PostgresStorage) DeletePredictions(ctx context.Context, uid string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM predictions WHERE user_id = $1`, uid); err != nil {
		p.logger.Errorf("failed to delete predictions: %v", err)
		return err
	}
	if _, err := p.pool.Exec(ctx, `DELETE FROM prediction_counters WHERE user_id = $1`, uid); err != nil {
		p.logger.Errorf("failed to delete prediction counter: %v", err)
		return err
	}
	return nil
}

// --- ScheduleRepository ---

func (p *PostgresStorage) SaveSchedule(ctx context.Context, rec *internal.ScheduleRecord) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO schedules (id, user_id, bed_time, wake_up_time, wake_up_alarm, sleep_reminders, planned_duration, actual_bed_time, actual_wake_up_time, actual_duration, difference, sleep_quality, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET bed_time = $3, wake_up_time = $4, wake_up_alarm = $5, sleep_reminders = $6, planned_duration = $7, actual_bed_time = $8, actual_wake_up_time = $9, actual_duration = $10, difference = $11, sleep_quality = $12, notes = $13`,
		rec.ID, rec.UserID, rec.BedTime, rec.WakeUpTime, rec.WakeUpAlarm, rec.SleepReminders, rec.PlannedDuration,
		rec.ActualBedTime, rec.ActualWakeUpTime, rec.ActualDuration, rec.Difference, rec.SleepQuality, rec.Notes, rec.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert schedule: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetSchedule(ctx context.Context, uid, id string) (*internal.ScheduleRecord, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, bed_time, wake_up_time, wake_up_alarm, sleep_reminders, planned_duration, actual_bed_time, actual_wake_up_time, actual_duration, difference, sleep_quality, notes, created_at
		FROM schedules WHERE user_id = $1 AND id = $2`, uid, id)
	rec, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan schedule: %v", err)
		return nil, err
	}
	return rec, nil
}

func (p *PostgresStorage) ListSchedules(ctx context.Context, uid string) ([]internal.ScheduleRecord, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, bed_time, wake_up_time, wake_up_alarm, sleep_reminders, planned_duration, actual_bed_time, actual_wake_up_time, actual_duration, difference, sleep_quality, notes, created_at
		FROM schedules WHERE user_id = $1 ORDER BY inserted_at DESC`, uid)
	if err != nil {
		p.logger.Errorf("failed to query schedules: %v", err)
		return nil, err
	}
	defer rows.Close()

	var recs []internal.ScheduleRecord
	for rows.Next() {
		rec, err := scanSchedule(rows)
		if err != nil {
			p.logger.Errorf("failed to scan schedule: %v", err)
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func scanSchedule(row pgx.Row) (*internal.ScheduleRecord, error) {
	var rec internal.ScheduleRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.BedTime, &rec.WakeUpTime, &rec.WakeUpAlarm, &rec.SleepReminders, &rec.PlannedDuration,
		&rec.ActualBedTime, &rec.ActualWakeUpTime, &rec.ActualDuration, &rec.Difference, &rec.SleepQuality, &rec.Notes, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (p *PostgresStorage) DeleteSchedules(ctx context.Context, uid string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM schedules WHERE user_id = $1`, uid); err != nil {
		p.logger.Errorf("failed to delete schedules: %v", err)
		return err
	}
	return nil
}

// --- FeedbackRepository ---

func (p *PostgresStorage) NextFeedbackNumber(ctx context.Context, uid string) (int, error) {
	row := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedback WHERE user_id = $1`, uid)
	var count int
	if err := row.Scan(&count); err != nil {
		p.logger.Errorf("failed to count feedback: %v", err)
		return 0, err
	}
	return count + 1, nil
}

func (p *PostgresStorage) SaveFeedback(ctx context.Context, entry *internal.FeedbackEntry) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO feedback (user_id, feedback, feedback_number, created_at) VALUES ($1, $2, $3, $4)`,
		entry.UserID, entry.Feedback, entry.FeedbackNumber, entry.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert feedback: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) DeleteFeedback(ctx context.Context, uid string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM feedback WHERE user_id = $1`, uid); err != nil {
		p.logger.Errorf("failed to delete feedback: %v", err)
		return err
	}
	return nil
}

// --- ModelMetaRepository ---

func (p *PostgresStorage) GetModelInfo(ctx context.Context) (*internal.ModelInfo, error) {
	row := p.pool.QueryRow(ctx, `SELECT model_url, file_name, version FROM model_meta WHERE key = 'latest_model'`)
	var info internal.ModelInfo
	if err := row.Scan(&info.ModelURL, &info.FileName, &info.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan model metadata: %v", err)
		return nil, err
	}
	return &info, nil
}

func (p *PostgresStorage) SetModelInfo(ctx context.Context, info *internal.ModelInfo) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO model_meta (key, model_url, file_name, version) VALUES ('latest_model', $1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET model_url = $1, file_name = $2, version = $3`,
		info.ModelURL, info.FileName, info.Version)
	if err != nil {
		p.logger.Errorf("failed to upsert model metadata: %v", err)
		return err
	}
	return nil
}

// --- Compile-time assertion ---
var _ Store = (*PostgresStorage)(nil)
