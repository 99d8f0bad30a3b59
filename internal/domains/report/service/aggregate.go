package service

import (
	"math"
	"sort"
	"time"

	"labdesk/internal/domains/report/model/dto"
	reservationModel "labdesk/internal/domains/reservation/model"
	"labdesk/internal/domains/reservation/status"
	"labdesk/internal/domains/reservation/timegrid"
	"labdesk/shared/constant"
	"labdesk/shared/timezone"
)

// Summary is the raw aggregate before formatting.
type Summary struct {
	UtilizedMinutes  int
	WindowMinutes    int
	UtilizationPct   float64
	ReservationCount int
}

// Aggregate computes utilized minutes over [winStart, winEnd). Only confirmed
// reservations count; pending requests and cancellations never contribute.
// Each window is clamped to the report window first, so a reservation
// straddling the boundary contributes only its inside portion.
func Aggregate(winStart, winEnd time.Time, reservations []reservationModel.Reservation) Summary {
	utilized := 0
	count := 0

	for _, res := range reservations {
		minutes, ok := confirmedMinutes(winStart, winEnd, res)
		if !ok {
			continue
		}

		utilized += minutes
		count++
	}

	windowMinutes := int(winEnd.Sub(winStart).Minutes())

	return Summary{
		UtilizedMinutes:  utilized,
		WindowMinutes:    windowMinutes,
		UtilizationPct:   roundedPct(utilized, windowMinutes),
		ReservationCount: count,
	}
}

// Timeline renders the reservations overlapping the window as ordered
// entries, preserving the start-time order the repository returns. Each
// window is clamped first; rows that clamp to nothing are dropped. Every
// stored status appears so a timeline shows pending and cancelled slots too,
// with confirmed rows resolved against now.
func Timeline(winStart, winEnd, now time.Time, reservations []reservationModel.Reservation) []dto.TimelineEntry {
	entries := make([]dto.TimelineEntry, 0, len(reservations))

	for _, res := range reservations {
		start, end, ok := timegrid.Clamp(res.StartTime, res.EndTime, winStart, winEnd)
		if !ok {
			continue
		}

		entries = append(entries, dto.TimelineEntry{
			ReservationID: res.ID,
			UserID:        res.UserID,
			Label:         res.Purpose,
			Status:        status.ResolveReservation(res.Status, res.StartTime, res.EndTime, now),
			StartTime:     timezone.Format(start, constant.DateFormat),
			EndTime:       timezone.Format(end, constant.DateFormat),
			Minutes:       int(end.Sub(start).Minutes()),
		})
	}

	return entries
}

// BreakdownByUser groups the confirmed clamped minutes by the reserving
// user.
func BreakdownByUser(winStart, winEnd time.Time, summary Summary, reservations []reservationModel.Reservation) []dto.BreakdownRow {
	byUser := map[string]int{}

	for _, res := range reservations {
		minutes, ok := confirmedMinutes(winStart, winEnd, res)
		if !ok {
			continue
		}

		byUser[res.UserID] += minutes
	}

	return breakdownRows(byUser, summary)
}

// BreakdownByEquipment attributes each reservation's confirmed clamped
// minutes to every equipment item it links to, so a two-item reservation
// counts fully against both items.
func BreakdownByEquipment(winStart, winEnd time.Time, summary Summary, reservations []reservationModel.Reservation, links []reservationModel.ReservationEquipment) []dto.BreakdownRow {
	equipmentByReservation := map[string][]string{}
	for _, link := range links {
		equipmentByReservation[link.ReservationID] = append(equipmentByReservation[link.ReservationID], link.EquipmentID)
	}

	byEquipment := map[string]int{}

	for _, res := range reservations {
		minutes, ok := confirmedMinutes(winStart, winEnd, res)
		if !ok {
			continue
		}

		for _, equipmentID := range equipmentByReservation[res.ID] {
			byEquipment[equipmentID] += minutes
		}
	}

	return breakdownRows(byEquipment, summary)
}

// confirmedMinutes is the shared counting rule: confirmed status and a
// non-empty clamp, otherwise the reservation contributes nothing.
func confirmedMinutes(winStart, winEnd time.Time, res reservationModel.Reservation) (int, bool) {
	if res.Status != constant.ReservationStatusConfirmed {
		return 0, false
	}

	start, end, ok := timegrid.Clamp(res.StartTime, res.EndTime, winStart, winEnd)
	if !ok {
		return 0, false
	}

	return int(end.Sub(start).Minutes()), true
}

func breakdownRows(minutesByID map[string]int, summary Summary) []dto.BreakdownRow {
	rows := make([]dto.BreakdownRow, 0, len(minutesByID))

	for id, minutes := range minutesByID {
		rows = append(rows, dto.BreakdownRow{
			SubjectID:       id,
			UtilizedMinutes: minutes,
			PctOfUtilized:   roundedPct(minutes, summary.UtilizedMinutes),
			PctOfWindow:     roundedPct(minutes, summary.WindowMinutes),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UtilizedMinutes != rows[j].UtilizedMinutes {
			return rows[i].UtilizedMinutes > rows[j].UtilizedMinutes
		}

		return rows[i].SubjectID < rows[j].SubjectID
	})

	return rows
}

func roundedPct(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}

	return math.Round(float64(part)/float64(whole)*100*100) / 100
}
