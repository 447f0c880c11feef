package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SmartAcademic/SA-Backend/internal/academics"
	"github.com/SmartAcademic/SA-Backend/internal/attendance"
	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/events"
	"github.com/SmartAcademic/SA-Backend/internal/marks"
	"github.com/SmartAcademic/SA-Backend/internal/notices"
	"github.com/SmartAcademic/SA-Backend/internal/utils"
)

type Stats struct {
	TotalStudents  int64            `json:"total_students"`
	TotalFaculty   int64            `json:"total_faculty"`
	TotalSubjects  int64            `json:"total_subjects"`
	UpcomingEvents int64            `json:"upcoming_events"`
	TodayPresent   int64            `json:"today_present"`
	TodayAbsent    int64            `json:"today_absent"`
	Grades         map[string]int   `json:"grades"`
	MonthlyTrend   []MonthlyBucket  `json:"monthly_trend"`
	RecentNotices  []notices.Notice `json:"recent_notices"`
	NextEvents     []events.Event   `json:"next_events"`
}

type MonthlyBucket struct {
	Month         string  `json:"month"`
	AttendancePct float64 `json:"attendance_pct"`
	AverageMarks  float64 `json:"average_marks"`
}

// StatsHandler builds the dashboard payload. Admins and faculty see
// campus-wide numbers; students see their own attendance and grades.
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	cacheKey := "dashboard:stats:" + role
	if role == auth.RoleStudent {
		cacheKey = "dashboard:stats:student:" + userID
	}

	var stats Stats
	if cacheGet(r.Context(), cacheKey, &stats) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "max-age=60")
		json.NewEncoder(w).Encode(stats)
		return
	}

	studentScope := ""
	if role == auth.RoleStudent {
		studentScope = userID
	}

	stats, err := buildStats(role, studentScope)
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	cacheSet(r.Context(), cacheKey, stats)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func buildStats(role, studentID string) (Stats, error) {
	var stats Stats
	today := time.Now().Format("2006-01-02")

	if err := db.DB.Model(&auth.Profile{}).Where("role = ?", auth.RoleStudent).Count(&stats.TotalStudents).Error; err != nil {
		return stats, err
	}
	if err := db.DB.Model(&auth.Profile{}).Where("role = ?", auth.RoleFaculty).Count(&stats.TotalFaculty).Error; err != nil {
		return stats, err
	}
	if err := db.DB.Model(&academics.Subject{}).Count(&stats.TotalSubjects).Error; err != nil {
		return stats, err
	}
	if err := db.DB.Model(&events.Event{}).Where("event_date >= ?", today).Count(&stats.UpcomingEvents).Error; err != nil {
		return stats, err
	}

	attToday := db.DB.Model(&attendance.Record{}).Where("date = ?", today)
	if studentID != "" {
		attToday = attToday.Where("student_id = ?", studentID)
	}
	if err := attToday.Where("status = ?", attendance.StatusPresent).Count(&stats.TodayPresent).Error; err != nil {
		return stats, err
	}
	attToday = db.DB.Model(&attendance.Record{}).Where("date = ?", today)
	if studentID != "" {
		attToday = attToday.Where("student_id = ?", studentID)
	}
	if err := attToday.Where("status = ?", attendance.StatusAbsent).Count(&stats.TodayAbsent).Error; err != nil {
		return stats, err
	}

	markQuery := db.DB.Model(&marks.Mark{})
	if studentID != "" {
		markQuery = markQuery.Where("student_id = ?", studentID)
	}
	var allMarks []marks.Mark
	if err := markQuery.Find(&allMarks).Error; err != nil {
		return stats, err
	}
	percentages := make([]float64, 0, len(allMarks))
	for _, mark := range allMarks {
		percentages = append(percentages, mark.Percentage())
	}
	stats.Grades = Distribution(percentages)

	trend, err := monthlyTrend(studentID, 6)
	if err != nil {
		return stats, err
	}
	stats.MonthlyTrend = trend

	recent, err := recentNotices(role, 3)
	if err != nil {
		return stats, err
	}
	stats.RecentNotices = recent
	if err := db.DB.Where("event_date >= ?", today).Order("event_date ASC").Limit(3).Find(&stats.NextEvents).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

// recentNotices mirrors the notice board's visibility rule: non-admins only
// see notices with no audience list or one naming their role.
func recentNotices(role string, limit int) ([]notices.Notice, error) {
	query := db.DB.Model(&notices.Notice{})
	if role != auth.RoleAdmin {
		query = query.Where("audience IS NULL OR cardinality(audience) = 0 OR ? = ANY(audience)", role)
	}

	var out []notices.Notice
	err := query.Order("is_pinned DESC").Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

// monthlyTrend computes per-month attendance percentage and average marks
// over the trailing `months` months, oldest first.
func monthlyTrend(studentID string, months int) ([]MonthlyBucket, error) {
	buckets := make([]MonthlyBucket, 0, months)
	now := time.Now()

	for i := months - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		attQuery := db.DB.Model(&attendance.Record{}).
			Where("date >= ? AND date < ?", monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02"))
		if studentID != "" {
			attQuery = attQuery.Where("student_id = ?", studentID)
		}
		var total, present int64
		if err := attQuery.Count(&total).Error; err != nil {
			return nil, err
		}
		attQuery = db.DB.Model(&attendance.Record{}).
			Where("date >= ? AND date < ?", monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02")).
			Where("status = ?", attendance.StatusPresent)
		if studentID != "" {
			attQuery = attQuery.Where("student_id = ?", studentID)
		}
		if err := attQuery.Count(&present).Error; err != nil {
			return nil, err
		}

		bucket := MonthlyBucket{Month: monthStart.Format("Jan")}
		if total > 0 {
			bucket.AttendancePct = float64(present) / float64(total) * 100
		}

		markQuery := db.DB.Model(&marks.Mark{}).
			Where("created_at >= ? AND created_at < ?", monthStart, monthEnd)
		if studentID != "" {
			markQuery = markQuery.Where("student_id = ?", studentID)
		}
		var monthMarks []marks.Mark
		if err := markQuery.Find(&monthMarks).Error; err != nil {
			return nil, err
		}
		if len(monthMarks) > 0 {
			sum := 0.0
			for _, mark := range monthMarks {
				sum += mark.Percentage()
			}
			bucket.AverageMarks = sum / float64(len(monthMarks))
		}

		buckets = append(buckets, bucket)
	}

	return buckets, nil
}
