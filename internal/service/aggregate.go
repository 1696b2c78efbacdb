package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/kadpoly-ict/ards-api/internal/models"
)

// gradePoints maps canonical letter grades to grade points. Grades outside
// this table contribute nothing to the aggregate but still appear in the
// notification's course listing.
var gradePoints = map[string]float64{
	"A": 4.0,
	"B": 3.0,
	"C": 2.0,
	"D": 1.0,
	"F": 0.0,
}

const (
	remarkExcellent = "Excellent Performance"
	remarkGood      = "Good Performance"
	remarkFair      = "Fair Performance"
)

// ComputeBatchAggregate derives the grade-point average and qualitative remark
// for one student batch. The GPA is the mean over mappable grades only,
// rounded to two decimals. When no entry carries a mappable grade both fields
// are left empty. Malformed grade values never raise an error.
func ComputeBatchAggregate(entries []models.CourseResult) models.BatchAggregate {
	var sum float64
	var mapped int
	for _, entry := range entries {
		points, ok := gradePoints[strings.ToUpper(strings.TrimSpace(entry.Grade))]
		if !ok {
			continue
		}
		sum += points
		mapped++
	}
	if mapped == 0 {
		return models.BatchAggregate{}
	}

	gpa := math.Round(sum/float64(mapped)*100) / 100
	remark := remarkFair
	switch {
	case gpa >= 3.5:
		remark = remarkExcellent
	case gpa >= 2.5:
		remark = remarkGood
	}
	return models.BatchAggregate{
		GPA:    fmt.Sprintf("%.2f", gpa),
		Remark: remark,
	}
}
