package song

import (
	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/songwriter"
)

func toComposeResponse(song *songwriter.Song) entity.ComposeResponse {
	return entity.ComposeResponse{
		StylePrompt: song.StylePrompt,
		Lyrics:      song.Lyrics,
	}
}

func toJobStatusResponse(job *entity.Job) entity.JobStatusResponse {
	return entity.JobStatusResponse{
		JobID:    job.ID,
		Status:   job.Status,
		AudioURL: job.AudioURL,
		Error:    job.Error,
	}
}
