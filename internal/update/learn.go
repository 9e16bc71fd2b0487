package update

import tea "github.com/charmbracelet/bubbletea"

type article struct {
	Title string
	Body  string
}

var learnArticles = []article{
	{
		Title: "Temporal Myopia",
		Body: `# Temporal Myopia

ADHD makes planning for the future hard because the brain sorts time into
**"now"** and **"not now"**.

- Deadlines feel unreal until they are close.
- Break long projects into steps that live in *now*.
- A visible timer turns "later" into something you can see.`,
	},
	{
		Title: "Dopamine and ADHD",
		Body: `# Dopamine and ADHD

Our brains chase quick stimulation because fewer dopamine receptors are
active.

- Small wins release dopamine, so celebrate them.
- Points for tiny tasks are fuel, not a gimmick.
- Boredom is a signal, not a character flaw.`,
	},
	{
		Title: "Body Doubling",
		Body: `# Body Doubling

Having someone simply sitting in the same room helps your brain stay with a
task.

- Work next to a friend, in person or on a call.
- Libraries and cafes count too.
- You don't have to talk, just be there together.`,
	},
	{
		Title: "Brown Noise",
		Body: `# Brown Noise

Low frequencies can calm mental chaos better than total silence.

- Try it at low volume while you work.
- It masks small sudden sounds that steal attention.
- Give it ten minutes before you judge it.`,
	},
}

func (m Model) handleLearnKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.learnAt > 0 {
			m.learnAt--
			m.learnViewport.GotoTop()
		}
		return m, nil
	case "l", "right":
		if m.learnAt < len(learnArticles)-1 {
			m.learnAt++
			m.learnViewport.GotoTop()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.learnViewport, cmd = m.learnViewport.Update(msg)
	return m, cmd
}
