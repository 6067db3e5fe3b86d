package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dreamguard-id/DreamGuard/internal"
)

// FileStorage keeps every collection in memory and persists them as JSON
// documents under a data directory. Writes are debounced through a save
// worker so a burst of requests does not thrash the disk.
type FileStorage struct {
	profiles    map[string]*internal.UserProfile
	predictions map[string][]*internal.PredictionRecord // per user, ascending by sequence
	sequences   map[string]int                          // per-user prediction counter
	schedules   map[string][]*internal.ScheduleRecord   // per user, oldest first
	feedback    map[string][]*internal.FeedbackEntry
	modelInfo   *internal.ModelInfo

	mu           sync.RWMutex
	dir          string
	saveChan     chan struct{}
	shutdownChan chan struct{}
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileStorage(dir string, logger internal.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStorage{
		profiles:     make(map[string]*internal.UserProfile),
		predictions:  make(map[string][]*internal.PredictionRecord),
		sequences:    make(map[string]int),
		schedules:    make(map[string][]*internal.ScheduleRecord),
		feedback:     make(map[string][]*internal.FeedbackEntry),
		dir:          dir,
		saveChan:     make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load data: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStorage) load() error {
	var profiles []*internal.UserProfile
	if err := readFileJSON(s.path("profiles.json"), &profiles); err != nil {
		return err
	}
	for _, p := range profiles {
		s.profiles[p.UID] = p
	}

	var records []*internal.PredictionRecord
	if err := readFileJSON(s.path("predictions.json"), &records); err != nil {
		return err
	}
	for _, r := range records {
		s.predictions[r.UserID] = append(s.predictions[r.UserID], r)
	}
	for uid := range s.predictions {
		sort.Slice(s.predictions[uid], func(i, j int) bool {
			return s.predictions[uid][i].SequenceNumber < s.predictions[uid][j].SequenceNumber
		})
		// Resume the counter from the highest persisted sequence.
		last := s.predictions[uid][len(s.predictions[uid])-1]
		s.sequences[uid] = last.SequenceNumber
	}

	var schedules []*internal.ScheduleRecord
	if err := readFileJSON(s.path("schedules.json"), &schedules); err != nil {
		return err
	}
	for _, sc := range schedules {
		s.schedules[sc.UserID] = append(s.schedules[sc.UserID], sc)
	}

	var entries []*internal.FeedbackEntry
	if err := readFileJSON(s.path("feedback.json"), &entries); err != nil {
		return err
	}
	for _, e := range entries {
		s.feedback[e.UserID] = append(s.feedback[e.UserID], e)
	}
	for uid := range s.feedback {
		sort.Slice(s.feedback[uid], func(i, j int) bool {
			return s.feedback[uid][i].FeedbackNumber < s.feedback[uid][j].FeedbackNumber
		})
	}

	var info internal.ModelInfo
	if err := readFileJSON(s.path("model_meta.json"), &info); err != nil {
		return err
	}
	if info.Version != "" {
		s.modelInfo = &info
	}

	return nil
}

func readFileJSON(path string, out interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveAll() error {
	s.mu.RLock()
	profiles := make([]*internal.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	var records []*internal.PredictionRecord
	for _, rs := range s.predictions {
		records = append(records, rs...)
	}
	var schedules []*internal.ScheduleRecord
	for _, scs := range s.schedules {
		schedules = append(schedules, scs...)
	}
	var entries []*internal.FeedbackEntry
	for _, es := range s.feedback {
		entries = append(entries, es...)
	}
	info := s.modelInfo
	s.mu.RUnlock()

	if records == nil {
		records = make([]*internal.PredictionRecord, 0)
	}
	if schedules == nil {
		schedules = make([]*internal.ScheduleRecord, 0)
	}
	if entries == nil {
		entries = make([]*internal.FeedbackEntry, 0)
	}

	if err := atomicWriteFileJSON(s.path("profiles.json"), profiles); err != nil {
		return err
	}
	if err := atomicWriteFileJSON(s.path("predictions.json"), records); err != nil {
		return err
	}
	if err := atomicWriteFileJSON(s.path("schedules.json"), schedules); err != nil {
		return err
	}
	if err := atomicWriteFileJSON(s.path("feedback.json"), entries); err != nil {
		return err
	}
	if info != nil {
		if err := atomicWriteFileJSON(s.path("model_meta.json"), info); err != nil {
			return err
		}
	}
	return nil
}

// saveWorker batches save operations to avoid frequent disk writes.
func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveAll(); err != nil {
				s.logger.Errorf("storage: error saving data: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) signalSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

// Close stops the save worker and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	return s.saveAll()
}

// --- ProfileRepository ---

func (s *FileStorage) SaveProfile(ctx context.Context, profile *internal.UserProfile) error {
	s.mu.Lock()
	s.profiles[profile.UID] = profile
	s.mu.Unlock()
	s.signalSave()
	return nil
}

func (s *FileStorage) GetProfile(ctx context.Context, uid string) (*internal.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *FileStorage) DeleteProfile(ctx context.Context, uid string) error {
	s.mu.Lock()
	_, ok := s.profiles[uid]
	delete(s.profiles, uid)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.signalSave()
	return nil
}

// --- PredictionRepository ---

func (s *FileStorage) NextSequence(ctx context.Context, uid string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[uid]++
	return s.sequences[uid], nil
}

func (s *FileStorage) SavePrediction(ctx context.Context, rec *internal.PredictionRecord) error {
	s.mu.Lock()
	s.predictions[rec.UserID] = append(s.predictions[rec.UserID], rec)
	s.mu.Unlock()
	s.signalSave()
	return nil
}

func (s *FileStorage) ListPredictions(ctx context.Context, uid string) ([]internal.PredictionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.predictions[uid]
	out := make([]internal.PredictionRecord, len(recs))
	for i, r := range recs {
		out[i] = *r
	}
	return out, nil
}

func (s *FileStorage) GetPrediction(ctx context.Context, uid, id string) (*internal.PredictionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.predictions[uid] {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStorage) DeletePredictions(ctx context.Context, uid string) error {
	s.mu.Lock()
	delete(s.predictions, uid)
	delete(s.sequences, uid)
	s.mu.Unlock()
	s.signalSave()
	return nil
}

// --- ScheduleRepository ---

func (s *FileStorage) SaveSchedule(ctx context.Context, rec *internal.ScheduleRecord) error {
	s.mu.Lock()
	recs := s.schedules[rec.UserID]
	replaced := false
	for i, existing := range recs {
		if existing.ID == rec.ID {
			recs[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, rec)
	}
	s.schedules[rec.UserID] = recs
	s.mu.Unlock()
	s.signalSave()
	return nil
}

func (s *FileStorage) GetSchedule(ctx context.Context, uid, id string) (*internal.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.schedules[uid] {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStorage) ListSchedules(ctx context.Context, uid string) ([]internal.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.schedules[uid]
	out := make([]internal.ScheduleRecord, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, *recs[i])
	}
	return out, nil
}

func (s *FileStorage) DeleteSchedules(ctx context.Context, uid string) error {
	s.mu.Lock()
	delete(s.schedules, uid)
	s.mu.Unlock()
	s.signalSave()
	return nil
}

// --- FeedbackRepository ---

func (s *FileStorage) NextFeedbackNumber(ctx context.Context, uid string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.feedback[uid]) + 1, nil
}

func (s *FileStorage) SaveFeedback(ctx context.Context, entry *internal.FeedbackEntry) error {
	s.mu.Lock()
	s.feedback[entry.UserID] = append(s.feedback[entry.UserID], entry)
	s.mu.Unlock()
	s.signalSave()
	return nil
}

func (s *FileStorage) DeleteFeedback(ctx context.Context, uid string) error {
	s.mu.Lock()
	delete(s.feedback, uid)
	s.mu.Unlock()
	s.signalSave()
	return nil
}

// --- ModelMetaRepository ---

func (s *FileStorage) GetModelInfo(ctx context.Context) (*internal.ModelInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.modelInfo == nil {
		return nil, ErrNotFound
	}
	cp := *s.modelInfo
	return &cp, nil
}

func (s *FileStorage) SetModelInfo(ctx context.Context, info *internal.ModelInfo) error {
	s.mu.Lock()
	s.modelInfo = info
	s.mu.Unlock()
	s.signalSave()
	return nil
}

// --- Compile-time assertion ---
var _ Store = (*FileStorage)(nil)
