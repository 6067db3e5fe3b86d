package internal

// User holds the identity claims verified by the auth provider. The UID is
// externally issued and immutable.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserProfile is the persisted profile document. Fields that the client has
// not filled in yet stay nil.
type UserProfile struct {
	UID            string     `json:"uid"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Age            *int       `json:"age"`
	Gender         *string    `json:"gender"`     // "male" or "female"
	Occupation     *int       `json:"occupation"` // ordinal 1..11
	SleepGoal      *SleepGoal `json:"sleepGoal"`
	ProfilePicture *string    `json:"profilePicture"`
	CreatedAt      string     `json:"createdAt"`
}

// SleepGoal is the user's target nightly sleep time.
type SleepGoal struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// PredictionInput is the snapshot of biometric and lifestyle values a
// prediction was computed from.
type PredictionInput struct {
	Gender        int     `json:"gender"` // 1 female, 2 male
	Age           int     `json:"age"`
	SleepDuration float64 `json:"sleepDuration"` // hours
	SleepQuality  int     `json:"sleepQuality"`  // 1..10
	Occupation    int     `json:"occupation"`    // ordinal 1..11
	ActivityLevel int     `json:"activityLevel"` // 1..100
	StressLevel   int     `json:"stressLevel"`   // 1..10
	Weight        int     `json:"weight"`        // kg
	Height        int     `json:"height"`        // cm
	HeartRate     int     `json:"heartRate"`
	DailySteps    int     `json:"dailySteps"`
	Systolic      int     `json:"systolic"`
	Diastolic     int     `json:"diastolic"`
}

// PredictionResult is the disambiguated outcome. ID goes beyond the raw
// three-class model output by folding in duration and stress thresholds.
type PredictionResult struct {
	ID                    int      `json:"id"`
	Text                  string   `json:"text"`
	ConfidencePercentages []string `json:"confidencePercentages"`
}

// PredictionRecord is immutable once created. SequenceNumber is assigned
// from a per-user counter and orders the history chronologically.
type PredictionRecord struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	Input          PredictionInput  `json:"input"`
	BMICategory    int              `json:"bmiCategory"` // 1 normal, 2 overweight, 3 obese
	Result         PredictionResult `json:"result"`
	SequenceNumber int              `json:"sequenceNumber"`
	CreatedAt      string           `json:"createdAt"`
}

// ScheduleRecord is a sleep schedule. Planned times are 12-hour clock
// strings as entered on the client; durations are rendered as "XhYm".
// Actual times are logged post-hoc, and ActualDuration/Difference are only
// derived once both are present.
type ScheduleRecord struct {
	ID               string  `json:"id"`
	UserID           string  `json:"userId"`
	BedTime          string  `json:"bedTime"`
	WakeUpTime       string  `json:"wakeUpTime"`
	WakeUpAlarm      bool    `json:"wakeUpAlarm"`
	SleepReminders   bool    `json:"sleepReminders"`
	PlannedDuration  string  `json:"plannedDuration"`
	ActualBedTime    *string `json:"actualBedTime"`
	ActualWakeUpTime *string `json:"actualWakeUpTime"`
	ActualDuration   *string `json:"actualDuration"`
	Difference       *string `json:"difference"`
	SleepQuality     *int    `json:"sleepQuality"` // 1..10
	Notes            *string `json:"notes"`
	CreatedAt        string  `json:"createdAt"`
}

// FeedbackEntry is a numbered piece of user feedback.
type FeedbackEntry struct {
	UserID         string `json:"userId"`
	Feedback       string `json:"feedback"`
	FeedbackNumber int    `json:"feedbackNumber"`
	CreatedAt      string `json:"createdAt"`
}

// ModelInfo is the cached metadata for the newest classifier model in blob
// storage, keyed by its filename-embedded version.
type ModelInfo struct {
	ModelURL string `json:"model_url"`
	FileName string `json:"file_name"`
	Version  string `json:"version"`
}
