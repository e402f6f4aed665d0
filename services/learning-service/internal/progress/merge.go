// Package progress сводит частичные обновления прогресса с сохранённым документом.
// Пакет не выполняет ввода-вывода.
package progress

import (
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

// Merge накладывает incoming на existing и возвращает новый срез.
// Совпавшие главы получают флаг completed из incoming, незнакомые разделы
// и главы добавляются в конец. Ничего не удаляется, входные срезы не меняются.
func Merge(existing, incoming []domain.SectionProgress) []domain.SectionProgress {
	merged := cloneSections(existing)

	index := make(map[string]int, len(merged))
	for i, s := range merged {
		index[s.SectionID] = i
	}

	for _, in := range incoming {
		i, ok := index[in.SectionID]
		if !ok {
			merged = append(merged, domain.SectionProgress{SectionID: in.SectionID})
			i = len(merged) - 1
			index[in.SectionID] = i
		}
		merged[i].Chapters = mergeChapters(merged[i].Chapters, in.Chapters)
	}
	return merged
}

// chapters уже является копией и меняется на месте.
func mergeChapters(chapters, incoming []domain.ChapterProgress) []domain.ChapterProgress {
	index := make(map[string]int, len(chapters))
	for i, c := range chapters {
		index[c.ChapterID] = i
	}
	for _, in := range incoming {
		if i, ok := index[in.ChapterID]; ok {
			chapters[i].Completed = in.Completed
			continue
		}
		chapters = append(chapters, in)
		index[in.ChapterID] = len(chapters) - 1
	}
	return chapters
}

func cloneSections(sections []domain.SectionProgress) []domain.SectionProgress {
	out := make([]domain.SectionProgress, len(sections))
	for i, s := range sections {
		out[i] = domain.SectionProgress{
			SectionID: s.SectionID,
			Chapters:  append([]domain.ChapterProgress(nil), s.Chapters...),
		}
	}
	return out
}

func CountChapters(sections []domain.SectionProgress) (completed, total int) {
	for _, s := range sections {
		for _, c := range s.Chapters {
			total++
			if c.Completed {
				completed++
			}
		}
	}
	return completed, total
}

// OverallProgress - доля пройденных глав, 0 для курса без глав.
func OverallProgress(sections []domain.SectionProgress) float64 {
	completed, total := CountChapters(sections)
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// Seed строит начальный прогресс по структуре курса: все главы не пройдены.
func Seed(structure *domain.CourseStructure) []domain.SectionProgress {
	sections := make([]domain.SectionProgress, 0, len(structure.Sections))
	for _, s := range structure.Sections {
		chapters := make([]domain.ChapterProgress, 0, len(s.Chapters))
		for _, c := range s.Chapters {
			chapters = append(chapters, domain.ChapterProgress{ChapterID: c.ChapterID})
		}
		sections = append(sections, domain.SectionProgress{SectionID: s.SectionID, Chapters: chapters})
	}
	return sections
}

func ValidateUpdate(incoming []domain.SectionProgress) error {
	for i, s := range incoming {
		if s.SectionID == "" {
			return domain.InvalidInput("sections[%d]: sectionId is required", i)
		}
		for j, c := range s.Chapters {
			if c.ChapterID == "" {
				return domain.InvalidInput("sections[%d].chapters[%d]: chapterId is required", i, j)
			}
		}
	}
	return nil
}
