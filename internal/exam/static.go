package exam

import (
	"fmt"

	"github.com/google/uuid"
)

// Writing and speaking prompts are fixed. They are served from the client
// and never sent to the model.

var writingTasks = []WritingTask{
	{
		ID:           1,
		Instructions: "You are joining a new sports club. Fill in the form. You have 3 minutes.\n\n- Full Name:\n- Sport of interest:\n- Previous experience (one sentence):",
	},
	{
		ID:           2,
		Instructions: "You are a member of a travel club. You are talking to three other members in the travel club chat room. Answer their questions. You have 10 minutes.\n\nAlex: Hi! Welcome to the club. What's the most interesting place you've ever visited?\n\nSam: I'm planning a trip to Italy. Any recommendations on what to see?\n\nJo: What kind of holidays do you enjoy the most? (e.g., beach, city break, adventure)",
	},
	{
		ID:           3,
		Instructions: "You recently bought an item online that arrived damaged. Write an email to the company's customer service. Explain the problem and tell them what you want them to do. Write about 120-150 words. You have 20 minutes.",
	},
}

var speakingTasks = []SpeakingTask{
	{
		ID:                 1,
		Instructions:       "Tell me about your hobbies and interests. You have 45 seconds to speak.",
		PreparationSeconds: 15,
		RecordingSeconds:   45,
	},
	{
		ID:                 2,
		Instructions:       "Describe this picture in as much detail as you can. What is happening? What are the people doing? You have 45 seconds.",
		PreparationSeconds: 30,
		RecordingSeconds:   45,
	},
	{
		ID:                 3,
		Instructions:       "Now, I will ask you two questions about the picture. First, what do you think the people will do next? Second, describe a time you participated in a similar activity.",
		PreparationSeconds: 30,
		RecordingSeconds:   60,
	},
}

// pictureTaskID is the speaking task that shows a photo.
const pictureTaskID = 2

// WritingTasks returns a fresh copy of the writing section.
func WritingTasks() *WritingContent {
	tasks := make([]WritingTask, len(writingTasks))
	copy(tasks, writingTasks)
	return &WritingContent{Tasks: tasks}
}

// SpeakingTasks returns a fresh copy of the speaking section. The picture
// task gets a new random photo on every call.
func SpeakingTasks() *SpeakingContent {
	tasks := make([]SpeakingTask, len(speakingTasks))
	copy(tasks, speakingTasks)
	for i := range tasks {
		if tasks[i].ID == pictureTaskID {
			tasks[i].ImagePromptURL = PictureURL(uuid.NewString())
		}
	}
	return &SpeakingContent{Tasks: tasks}
}

// PictureURL is the placeholder photo for a seed.
func PictureURL(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/400", seed)
}

// StaticContent returns the fixed content for Writing and Speaking.
func StaticContent(tt TestType) (Content, bool) {
	switch tt {
	case Writing:
		return WritingTasks(), true
	case Speaking:
		return SpeakingTasks(), true
	}
	return nil, false
}
