package web

// indexHTML is the editor shell. Edits are debounced before hitting /render,
// responses are correlated by request generation so a slow earlier render can
// never overwrite a newer one, and node drags adjust the group transform
// locally with deltas divided by the current zoom.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>classview</title>
<style>
  body { margin: 0; display: flex; height: 100vh; font-family: monospace; }
  #source { width: 34%; border: 0; border-right: 1px solid #888; padding: 12px;
            font: 13px monospace; resize: none; outline: none; }
  #stage { flex: 1; overflow: hidden; position: relative; background: #fafafa; }
  #stage.dark { background: #1e1e2e; }
  #canvas { transform-origin: 0 0; }
  #error { position: absolute; left: 12px; bottom: 12px; color: #c0392b;
           background: rgba(255,255,255,.9); padding: 4px 8px; display: none; }
  #bar { position: absolute; right: 12px; top: 12px; display: flex; gap: 6px; }
  #bar button { font: 12px monospace; }
</style>
</head>
<body>
<textarea id="source" spellcheck="false">classDiagram
class Animal {
  +name string
  +Speak() string
}
Animal &lt;|-- Dog
Dog --&gt; Bone : chews</textarea>
<div id="stage">
  <div id="canvas"></div>
  <div id="bar">
    <button id="theme">theme</button>
    <button id="curved">curved</button>
    <button id="fit">fit</button>
  </div>
  <div id="error"></div>
</div>
<script>
const DEBOUNCE_MS = 500;
const source = document.getElementById('source');
const stage = document.getElementById('stage');
const canvas = document.getElementById('canvas');
const errBox = document.getElementById('error');

let theme = 'light', curved = false;
let zoom = 1, panX = 0, panY = 0;
let timer = null, generation = 0;
let offsets = {}; // class name -> [dx, dy], survives re-renders

function applyView() {
  canvas.style.transform = 'translate(' + panX + 'px,' + panY + 'px) scale(' + zoom + ')';
}

async function renderNow() {
  const gen = ++generation;
  const res = await fetch('/render', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({source: source.value, theme: theme, curved: curved, offsets: offsets}),
  });
  const body = await res.json();
  if (gen !== generation) return; // superseded while in flight
  if (body.error) {
    errBox.textContent = body.error;
    errBox.style.display = 'block';
    return; // previous diagram stays visible
  }
  errBox.style.display = 'none';
  canvas.innerHTML = body.svg;
  wireDrag(canvas.querySelector('svg'));
}

function schedule() {
  clearTimeout(timer);
  timer = setTimeout(renderNow, DEBOUNCE_MS);
}
source.addEventListener('input', schedule);

document.getElementById('theme').onclick = () => {
  theme = theme === 'light' ? 'dark' : 'light';
  stage.classList.toggle('dark', theme === 'dark');
  renderNow();
};
document.getElementById('curved').onclick = () => { curved = !curved; renderNow(); };
document.getElementById('fit').onclick = () => { zoom = 1; panX = 0; panY = 0; applyView(); };

stage.addEventListener('wheel', (e) => {
  e.preventDefault();
  const factor = e.deltaY < 0 ? 1.1 : 1 / 1.1;
  zoom = Math.min(4, Math.max(0.25, zoom * factor));
  applyView();
}, {passive: false});

let panning = null;
stage.addEventListener('pointerdown', (e) => {
  if (e.target.closest('g.node')) return;
  panning = {x: e.clientX - panX, y: e.clientY - panY};
});
stage.addEventListener('pointermove', (e) => {
  if (!panning) return;
  panX = e.clientX - panning.x;
  panY = e.clientY - panning.y;
  applyView();
});
stage.addEventListener('pointerup', () => { panning = null; });

function wireDrag(svg) {
  if (!svg) return;
  svg.querySelectorAll('g.node').forEach((g) => {
    g.style.cursor = 'grab';
    g.addEventListener('pointerdown', (e) => {
      e.stopPropagation();
      const m = /translate\(([-\d.]+),([-\d.]+)\)/.exec(g.getAttribute('transform') || '');
      const base = m ? {x: +m[1], y: +m[2]} : {x: 0, y: 0};
      const start = {x: e.clientX, y: e.clientY};
      const move = (ev) => {
        // screen delta back to diagram units through the view scale
        const dx = (ev.clientX - start.x) / zoom;
        const dy = (ev.clientY - start.y) / zoom;
        g.setAttribute('transform',
          'translate(' + (base.x + dx).toFixed(2) + ',' + (base.y + dy).toFixed(2) + ')');
      };
      const up = (ev) => {
        window.removeEventListener('pointermove', move);
        window.removeEventListener('pointerup', up);
        const dx = (ev.clientX - start.x) / zoom;
        const dy = (ev.clientY - start.y) / zoom;
        offsets[g.id.replace(/^node-/, '')] = [base.x + dx, base.y + dy];
        renderNow(); // server re-routes the touched edges
      };
      window.addEventListener('pointermove', move);
      window.addEventListener('pointerup', up);
    });
  });
}

renderNow();
</script>
</body>
</html>
`
